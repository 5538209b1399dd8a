package model

import (
	"errors"
	"strings"
	"time"
)

// Hotel is a place trips can be attached to. Pix holds the hotel's
// instant-payment key.
type Hotel struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Location  *string    `json:"location"`
	Address   *string    `json:"address"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Website   *string    `json:"website"`
	Pix       *string    `json:"pix"`
	Notes     *string    `json:"notes"`
	CreatedAt *time.Time `json:"created_at"`
}

type HotelInput struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Website  *string `json:"website"`
	Pix      *string `json:"pix"`
	Notes    *string `json:"notes"`
}

func (in HotelInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("Name is required")
	}
	return nil
}
