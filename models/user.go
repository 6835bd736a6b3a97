// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is a registered ledger account.
type User struct {
	// UserID is the server-assigned identifier.
	UserID int64 `json:"-"`

	// Name is the display name chosen at registration.
	Name string `json:"name"`

	// Email is the unique login identifier. Lookups are case-sensitive.
	Email string `json:"email"`

	// Password carries the plain-text password on input only.
	// It is never persisted or serialized back to clients.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the users table.
	PasswordHash string `json:"-"`

	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the table that stores users.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the payload of the registration form.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the payload of the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload of the profile password form.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Profile is the view model returned on the profile page.
type Profile struct {
	User    User    `json:"user"`
	Flashes []Flash `json:"flashes"`
}
