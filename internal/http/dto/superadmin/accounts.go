// Package superadmin contiene los DTOs de /v1/accounts.
package superadmin

import "github.com/dropDatabas3/gymcore/internal/domain/repository"

// AccountCreate crea el User ACCOUNT_USER y su Account en un paso.
type AccountCreate struct {
	Name        string `json:"name" validate:"notblank,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	OwnerName   string `json:"owner_name" validate:"notblank,max=120"`
	Address     string `json:"address" validate:"omitempty,max=500"`
	ContactInfo string `json:"contact_info" validate:"omitempty,max=120"`
}

type AccountUpdate struct {
	OwnerName   *string `json:"owner_name" validate:"omitempty,notblank,max=120"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	ContactInfo *string `json:"contact_info" validate:"omitempty,max=120"`
}

// Empty reporta si el patch no trae ningún campo.
func (u AccountUpdate) Empty() bool {
	return u.OwnerName == nil && u.Address == nil && u.ContactInfo == nil
}

// AccountView es el Account junto con su User dueño.
type AccountView struct {
	repository.Account
	User *repository.User `json:"user,omitempty"`
}
