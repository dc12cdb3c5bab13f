package session

import (
	"fmt"

	"github.com/spf13/viper"
	"visitor-cli/internal/config"
	"visitor-cli/pkg/models"
)

const (
	keyToken     = "token"
	keyUserID    = "user.id"
	keyUserName  = "user.name"
	keyUserEmail = "user.email"
)

// FileStore keeps the session in the viper config file so it survives between commands.
type FileStore struct {
	v *viper.Viper
}

func NewFileStore(v *viper.Viper) *FileStore {
	return &FileStore{v: v}
}

func (f *FileStore) Load() Session {
	return Session{
		Token: f.v.GetString(keyToken),
		User: models.User{
			ID:    f.v.GetString(keyUserID),
			Name:  f.v.GetString(keyUserName),
			Email: f.v.GetString(keyUserEmail),
		},
	}
}

func (f *FileStore) Save(s Session) error {
	err := config.Persist(f.v, map[string]any{
		keyToken:     s.Token,
		keyUserID:    s.User.ID,
		keyUserName:  s.User.Name,
		keyUserEmail: s.User.Email,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	return f.Save(Session{})
}
