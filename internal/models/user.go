package models

import "strings"

// Wire field names of a document in the "users" collection.
const (
	UserFieldName    = "Nome"
	UserFieldEmail   = "Email"
	UserFieldManager = "Gestor"
	UserFieldCode    = "Codigo"
)

// User matches a directory document. Read-only reference data.
type User struct {
	DocumentKey string `json:"document"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Manager     string `json:"manager"`
	Code        string `json:"code"`
}

// IsManager reports whether the directory flags this user as a manager.
// The legacy data stores free-form "sim"/"Sim"/"não" values.
func (u User) IsManager() bool {
	return strings.EqualFold(strings.TrimSpace(u.Manager), "sim")
}

func (u User) Fields() map[string]string {
	return map[string]string{
		UserFieldName:    u.Name,
		UserFieldEmail:   u.Email,
		UserFieldManager: u.Manager,
		UserFieldCode:    u.Code,
	}
}

func UserFromFields(key string, fields map[string]string) User {
	return User{
		DocumentKey: key,
		Name:        fields[UserFieldName],
		Email:       fields[UserFieldEmail],
		Manager:     fields[UserFieldManager],
		Code:        fields[UserFieldCode],
	}
}
