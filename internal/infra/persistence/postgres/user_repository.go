// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByUserName retrieves a single user by their unique handle.
func (repo *userRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("user_name = ?", userName).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// FindByUserNameOrEmail retrieves a user matching either identifier.
// Empty identifiers are excluded so they can never match a blank column.
func (repo *userRepository) FindByUserNameOrEmail(ctx context.Context, userName, email string) (*entity.User, error) {
	query := repo.db.WithContext(ctx)

	switch {
	case userName != "" && email != "":
		query = query.Where("user_name = ? OR email = ?", userName, email)
	case userName != "":
		query = query.Where("user_name = ?", userName)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return nil, repository.ErrUserNotFound
	}

	var userM model.UserModel
	if err := query.First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username or email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the storage.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the storage.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"user_name":       userM.UserName,
			"email":           userM.Email,
			"full_name":       userM.FullName,
			"avatar_url":      userM.AvatarURL,
			"cover_image_url": userM.CoverImageURL,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists
		}

		return errors.Wrap(result.Error, "failed to update user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// RotateRefreshToken replaces the stored refresh token, guarded by the
// previous value so a concurrent rotation cannot be replayed. An empty
// previous skips the guard.
func (repo *userRepository) RotateRefreshToken(ctx context.Context, userID uuid.UUID, previous, next string) error {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID)

	if previous != "" {
		query = query.Where("refresh_token = ?", previous)
	}

	result := query.Update("refresh_token", next)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to rotate refresh token")
	}

	if result.RowsAffected == 0 {
		if previous == "" {
			return repository.ErrUserNotFound
		}

		// Either the user is gone or the stored token changed under us.
		// Check which so the caller can distinguish session loss from replay.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.UserModel{}).
			Where("id = ?", userID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to verify user for token rotation")
		}
		if count == 0 {
			return repository.ErrUserNotFound
		}

		return repository.ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshToken unconditionally removes the stored refresh token.
func (repo *userRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("refresh_token", "")

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear refresh token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdatePasswordHash replaces the stored password hash.
func (repo *userRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update password hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		UserName:      data.UserName,
		Email:         data.Email,
		FullName:      data.FullName,
		AvatarURL:     data.AvatarURL,
		CoverImageURL: data.CoverImageURL,
		PasswordHash:  data.PasswordHash,
		RefreshToken:  data.RefreshToken,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		UserName:      data.UserName,
		Email:         data.Email,
		FullName:      data.FullName,
		AvatarURL:     data.AvatarURL,
		CoverImageURL: data.CoverImageURL,
		PasswordHash:  data.PasswordHash,
		RefreshToken:  data.RefreshToken,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
