package main

import (
	"fmt"
	"strings"

	"checkup/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	roleAdmin    = "admin"
	roleReporter = "reporter"
	loginDomain  = "healthoffice.local"
)

// loginEmail builds the synthetic login identifier stored for a user.
func loginEmail(username string) string {
	return username + "@" + loginDomain
}

// accessTier is the three-way classification every request resolves to.
type accessTier int

const (
	tierAnonymous accessTier = iota
	tierReporter
	tierAdmin
)

// classifyAccess maps a resolved identity to its tier. Pure over its inputs
// and free of side effects; the middleware resolves the token, this only
// classifies. No resolvable user means anonymous; a resolved user is a
// reporter unless the admin role marker is present.
func classifyAccess(username, role string) accessTier {
	if strings.TrimSpace(username) == "" {
		return tierAnonymous
	}
	if role == roleAdmin {
		return tierAdmin
	}
	return tierReporter
}

// RegisterUser creates a reporter account. Admin accounts are created through
// the user directory or cmd/create_user.
func RegisterUser(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required")
	}
	if len(password) < 6 { // basic password policy
		return fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return fmt.Errorf("user already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// ensure role exists (idempotent)
	var role models.Role
	if err := db.Where("name = ?", roleReporter).First(&role).Error; err != nil {
		role = models.Role{Name: roleReporter, Description: "files monthly check-ups"}
		if err2 := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err2 != nil {
			return fmt.Errorf("failed to ensure reporter role: %v", err2)
		}
	}
	rid := role.ID
	user := models.User{
		Username:       username,
		Email:          loginEmail(username),
		Branch:         "Not Assigned",
		HashedPassword: hashedPassword,
		RoleID:         &rid,
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return fmt.Errorf("user already exists")
		}
		return err
	}
	return nil
}

func Authenticate(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
