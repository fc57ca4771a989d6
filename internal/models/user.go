package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserCode  string    `json:"userCode"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserCode string `json:"userCode"`
}

type LoginRequest struct {
	UserCode string `json:"userCode"`
}

type LoginResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
