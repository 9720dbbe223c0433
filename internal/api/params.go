// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/touchline/internal/validation"
)

// listRequest is the query of every ranked listing. A zero limit selects
// the configured default; larger values are clamped to the maximum.
type listRequest struct {
	Limit int `query:"limit" validate:"min=0,max=1000"`
}

// surfaceRequest only bounds the profile name. Registered names are free
// form, so existence is checked against the registry instead.
type surfaceRequest struct {
	Profile string `query:"profile" validate:"required,max=64"`
	Limit   int    `query:"limit" validate:"min=0,max=1000"`
}

type categoryRequest struct {
	Slug  string `query:"slug" validate:"required,max=128,slug"`
	Page  int    `query:"page" validate:"min=1,max=100000"`
	Limit int    `query:"limit" validate:"min=0,max=1000"`
}

type articleRequest struct {
	Slug  string `query:"slug" validate:"required,max=256,slug"`
	Limit int    `query:"limit" validate:"min=0,max=1000"`
}

// intParam reads an integer query parameter. A missing value yields def;
// a malformed one is reported as a validation error on name.
func intParam(r *http.Request, name string, def int) (int, *validation.Error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validation.Error{Fields: []validation.FieldError{{
			Field:   name,
			Tag:     "integer",
			Message: name + " must be an integer",
		}}}
	}
	return n, nil
}

func parseList(r *http.Request) (listRequest, *validation.Error) {
	limit, verr := intParam(r, "limit", 0)
	if verr != nil {
		return listRequest{}, verr
	}
	req := listRequest{Limit: limit}
	return req, validation.ValidateStruct(&req)
}

func parseSurface(r *http.Request) (surfaceRequest, *validation.Error) {
	limit, verr := intParam(r, "limit", 0)
	if verr != nil {
		return surfaceRequest{}, verr
	}
	req := surfaceRequest{Profile: chi.URLParam(r, "profile"), Limit: limit}
	return req, validation.ValidateStruct(&req)
}

func parseCategory(r *http.Request) (categoryRequest, *validation.Error) {
	page, verr := intParam(r, "page", 1)
	if verr != nil {
		return categoryRequest{}, verr
	}
	limit, verr := intParam(r, "limit", 0)
	if verr != nil {
		return categoryRequest{}, verr
	}
	req := categoryRequest{Slug: chi.URLParam(r, "slug"), Page: page, Limit: limit}
	return req, validation.ValidateStruct(&req)
}

func parseArticle(r *http.Request) (articleRequest, *validation.Error) {
	limit, verr := intParam(r, "limit", 0)
	if verr != nil {
		return articleRequest{}, verr
	}
	req := articleRequest{Slug: chi.URLParam(r, "slug"), Limit: limit}
	return req, validation.ValidateStruct(&req)
}
