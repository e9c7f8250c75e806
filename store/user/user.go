package user

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type userStore struct {
	db *db.DB
}

// New new user store
func New(db *db.DB) core.IUserStore {
	return &userStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.User{})
		if err := tx.AutoMigrate(core.User{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *userStore) Create(ctx context.Context, user *core.User) error {
	return s.db.Update().Where("user_id=?", user.UserID).FirstOrCreate(user).Error
}

func (s *userStore) Find(ctx context.Context, userID string) (*core.User, error) {
	var user core.User
	if err := s.db.View().Where("user_id=?", userID).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.User{UserID: userID}, nil
		}
		return nil, err
	}

	return &user, nil
}

func (s *userStore) All(ctx context.Context) ([]*core.User, error) {
	var users []*core.User
	if err := s.db.View().Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
