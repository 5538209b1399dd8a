package model

import (
	"errors"
	"strings"
	"time"
)

// Client is a customer of the tour operator.
type Client struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	Nationality *string    `json:"nationality"`
	Notes       *string    `json:"notes"`
	CPF         *string    `json:"cpf"`
	BirthDate   *string    `json:"birth_date"`
	CreatedAt   *time.Time `json:"created_at"`
}

// ClientInput is the editable part of a Client. Omitted fields are stored
// as NULL on both create and update.
type ClientInput struct {
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Nationality *string `json:"nationality"`
	Notes       *string `json:"notes"`
	CPF         *string `json:"cpf"`
	BirthDate   *string `json:"birth_date"`
}

func (in ClientInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("Name is required")
	}
	return nil
}
