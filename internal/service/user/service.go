package user

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avoronov/library-catalog/internal/errs"
	"github.com/avoronov/library-catalog/internal/model"
	"github.com/avoronov/library-catalog/internal/repository"
	"github.com/avoronov/library-catalog/internal/service/auth"
)

type Config struct {
	MediaRoot string `envconfig:"MEDIA_ROOT" default:"media"`
}

type Service struct {
	repo      repository.UserRepository
	log       *zap.Logger
	client    *http.Client
	mediaRoot string
}

func NewService(repo repository.UserRepository, cfg Config, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		log:       log.Named("user"),
		mediaRoot: cfg.MediaRoot,
		client: &http.Client{
			Timeout: time.Minute,
		},
	}
}

// Register creates a non-privileged user. Role flags in the request body are
// never honored; staff users come from the createadmin bootstrap.
func (s *Service) Register(ctx context.Context, req model.UserCreateRequest) (model.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return model.User{}, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		BirthDate:    req.BirthDate,
	}
	if req.Photo != nil && *req.Photo != "" {
		name, err := s.resolvePhoto(ctx, *req.Photo, "")
		if err != nil {
			return model.User{}, err
		}
		user.Photo = &name
	}

	return s.repo.Create(ctx, user)
}

// Update merges the supplied fields into the stored record. A full update
// (partial=false) additionally requires email to be present.
func (s *Service) Update(ctx context.Context, id int64, req model.UserUpdateRequest, partial bool) (model.User, error) {
	if !partial && (req.Email == nil || *req.Email == "") {
		return model.User{}, errs.NewValidation("email", "this field is required")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = req.Username
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}
	if req.Photo != nil && *req.Photo != "" {
		current := ""
		if user.Photo != nil {
			current = *user.Photo
		}
		name, err := s.resolvePhoto(ctx, *req.Photo, current)
		if err != nil {
			return model.User{}, err
		}
		user.Photo = &name
	}

	return s.repo.Update(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id int64, password string) error {
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// resolvePhoto turns the supplied photo value into a stored filename.
// URL values are downloaded into the media root under the remote base name.
// When the incoming name matches the currently stored one, the stored value
// is kept and no fetch happens.
func (s *Service) resolvePhoto(ctx context.Context, value, current string) (string, error) {
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		name := filepath.Base(value)
		if current != "" && name == filepath.Base(current) {
			return current, nil
		}
		return name, nil
	}

	u, err := url.Parse(value)
	if err != nil {
		return "", errs.NewValidation("photo", "invalid photo url")
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", errs.NewValidation("photo", "photo url has no filename")
	}
	if current != "" && name == filepath.Base(current) {
		return current, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, value, http.NoBody)
	if err != nil {
		return "", errs.NewValidation("photo", "invalid photo url")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("photo fetch", zap.String("url", value), zap.Error(err))
		return "", errs.NewValidation("photo", "failed to fetch photo")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errs.NewValidation("photo", "failed to fetch photo")
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewValidation("photo", "failed to fetch photo")
	}

	if err := os.MkdirAll(s.mediaRoot, 0o755); err != nil {
		return "", errs.NewValidation("photo", "failed to store photo")
	}
	if err := os.WriteFile(filepath.Join(s.mediaRoot, name), data, 0o644); err != nil {
		return "", errs.NewValidation("photo", "failed to store photo")
	}

	return name, nil
}
