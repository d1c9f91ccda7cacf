package repo

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
	GetByID(id int) (models.User, error)
	GetAll() ([]models.User, error)
	Delete(id int) error
}
