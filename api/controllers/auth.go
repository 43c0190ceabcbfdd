package controllers

import (
	"net/http"
	"strings"

	"github.com/javohirtm/ombor-backend/api/responses"
	"github.com/javohirtm/ombor-backend/api/validators"
	"github.com/javohirtm/ombor-backend/internal/admins"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/logger"
)

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// AuthLogin verifies the credential and returns a bearer token.
func AuthLogin(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), admins.LoginInput{
			PhoneNumber: strings.TrimSpace(payload.PhoneNumber),
			Password:    payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type adminCreateRequest struct {
	FullName       string  `json:"full_name" validate:"required"`
	PhoneNumber    string  `json:"phone_number" validate:"required"`
	Password       string  `json:"password"`
	ProfilePicture *string `json:"profile_picture"`
	RoleID         *int64  `json:"role_id"`
}

// AdminCreate registers a back-office admin.
func AdminCreate(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload adminCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), admins.CreateInput{
			FullName:       strings.TrimSpace(payload.FullName),
			PhoneNumber:    strings.TrimSpace(payload.PhoneNumber),
			Password:       payload.Password,
			ProfilePicture: payload.ProfilePicture,
			RoleID:         payload.RoleID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminList returns admins, paginated.
func AdminList(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		page, err := svc.List(r.Context(), paramsFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminDetail returns one admin by id.
func AdminDetail(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		adminID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admin, err := svc.Get(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}
