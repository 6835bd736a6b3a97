package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-expense-ledger/models"
)

const maxBodyBytes = 1 << 20

// decodeBody fills dst from a JSON body, or from form values when the request
// is form encoded and fromForm is not nil.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, fromForm func(url.Values) T) (T, error) {
	var dst T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if fromForm != nil {
		switch formMediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return dst, fmt.Errorf("%w: %w", ErrInvalidBody, err)
			}
			return fromForm(r.PostForm), nil
		case "multipart/form-data":
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return dst, fmt.Errorf("%w: %w", ErrInvalidBody, err)
			}
			return fromForm(r.PostForm), nil
		}
	}

	if err := json.NewDecoder(r.Body).Decode(&dst); err != nil {
		return dst, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return dst, nil
}

func formMediaType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

func registerFromForm(form url.Values) models.RegisterRequest {
	return models.RegisterRequest{
		Name:            form.Get("name"),
		Email:           form.Get("email"),
		Password:        form.Get("password"),
		ConfirmPassword: form.Get("confirmPassword"),
	}
}

func loginFromForm(form url.Values) models.LoginRequest {
	return models.LoginRequest{
		Email:    form.Get("email"),
		Password: form.Get("password"),
	}
}

func changePasswordFromForm(form url.Values) models.ChangePasswordRequest {
	return models.ChangePasswordRequest{
		CurrentPassword: form.Get("currentPassword"),
		NewPassword:     form.Get("newPassword"),
	}
}

func expenseFromForm(form url.Values) models.RawExpense {
	return models.RawExpense{
		Amount:      formField(form, "amount"),
		SpentAt:     formField(form, "spentAt"),
		Currency:    formField(form, "currency"),
		CategoryID:  formField(form, "categoryId"),
		Description: formField(form, "description"),
	}
}

func categoryFromForm(form url.Values) models.CategoryRequest {
	req := models.CategoryRequest{
		Name:      form.Get("name"),
		IsDefault: form.Get("isDefault") == "true" || form.Get("isDefault") == "on",
	}
	if form.Has("color") {
		color := form.Get("color")
		req.Color = &color
	}
	return req
}

func formField(form url.Values, key string) models.Field {
	if !form.Has(key) {
		return models.Field{}
	}
	return models.NewField(form.Get(key))
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
