package seed

import (
	"fmt"
	"os"

	"gastronet/internal/models"
	"gastronet/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixtures is a declarative seed file. It lets environments pin known
// accounts and relationships instead of relying on generated data.
type Fixtures struct {
	Users []struct {
		Handle      string `yaml:"handle"`
		Email       string `yaml:"email"`
		DisplayName string `yaml:"display_name"`
		Role        string `yaml:"role"`
		Password    string `yaml:"password"`
		IsAdmin     bool   `yaml:"is_admin"`
		IsPrivate   bool   `yaml:"is_private"`
	} `yaml:"users"`
	Suppliers []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
		Location string `yaml:"location"`
	} `yaml:"suppliers"`
	Follows []struct {
		Follower string `yaml:"follower"`
		Followee string `yaml:"followee"`
	} `yaml:"follows"`
}

// LoadFixtures parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Apply writes the fixture entities to the database. Users are matched by
// handle; existing rows are left untouched.
func (f *Fixtures) Apply(db *gorm.DB) error {
	byHandle := make(map[string]*models.User, len(f.Users))

	for _, fu := range f.Users {
		handle := validation.NormalizeHandle(fu.Handle)
		if err := validation.ValidateHandle(handle); err != nil {
			return fmt.Errorf("fixture user %q: %w", fu.Handle, err)
		}
		role := models.Role(fu.Role)
		if !role.Valid() {
			return fmt.Errorf("fixture user %q: invalid role %q", fu.Handle, fu.Role)
		}

		password := fu.Password
		if password == "" {
			password = "password123"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Handle:      handle,
			Email:       fu.Email,
			Password:    string(hashed),
			DisplayName: fu.DisplayName,
			Role:        role,
			IsAdmin:     fu.IsAdmin,
			IsPrivate:   fu.IsPrivate,
		}
		var existing models.User
		err = db.Where(models.User{Handle: handle}).Attrs(user).FirstOrCreate(&existing).Error
		if err != nil {
			return fmt.Errorf("fixture user %q: %w", fu.Handle, err)
		}
		byHandle[handle] = &existing
	}

	for _, fs := range f.Suppliers {
		supplier := models.Supplier{
			Name:     fs.Name,
			Category: fs.Category,
			Location: fs.Location,
		}
		err := db.Where(models.Supplier{Name: fs.Name}).
			Attrs(supplier).
			FirstOrCreate(&models.Supplier{}).Error
		if err != nil {
			return fmt.Errorf("fixture supplier %q: %w", fs.Name, err)
		}
	}

	for _, ff := range f.Follows {
		follower := byHandle[validation.NormalizeHandle(ff.Follower)]
		followee := byHandle[validation.NormalizeHandle(ff.Followee)]
		if follower == nil || followee == nil {
			return fmt.Errorf("fixture follow %s -> %s references unknown user", ff.Follower, ff.Followee)
		}
		edge := models.FollowEdge{FollowerID: follower.ID, FolloweeID: followee.ID}
		err := db.Where(edge).FirstOrCreate(&models.FollowEdge{}).Error
		if err != nil {
			return fmt.Errorf("fixture follow %s -> %s: %w", ff.Follower, ff.Followee, err)
		}
	}

	return nil
}
