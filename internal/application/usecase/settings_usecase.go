package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/ledger"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
)

// MinPasscodeLength is the shortest accepted manager passcode.
const MinPasscodeLength = 4

// Seed data for a fresh install.
var (
	DefaultZones = []string{
		"Main (On-site 25sqm)",
		"Satellite (On-site 10sqm)",
		"Bulk (4.5km Off-site 30sqm)",
		"Utility (4.5km Off-site 15sqm)",
	}
	DefaultCategories  = []string{"Dry Goods", "Alcohol", "Guest Supplies", "Chemicals"}
	DefaultDepartments = []string{
		"Housekeeping", "F&B Service", "Kitchen", "Front Office",
		"Engineering", "Spa & Wellness", "HR & Admin",
	}
	DefaultUsers = []entity.User{
		{Name: "Admin User", Role: entity.RoleManager},
		{Name: "R. Dela Cruz", Role: entity.RoleStaff},
		{Name: "M. Santos", Role: entity.RoleStaff},
	}
)

// SettingSet names one of the editable ordered sets.
type SettingSet string

const (
	SetZones       SettingSet = "zones"
	SetCategories  SettingSet = "categories"
	SetDepartments SettingSet = "departments"
)

// SettingsUseCase manages zones, categories, departments, profiles and the manager passcode.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	userRepo repository.UserRepository
	mu       sync.Locker
	notifier inventory.ChangeNotifier
	log      zerolog.Logger

	defaultPasscode string
}

// NewSettingsUseCase builds the use case. defaultPasscode seeds a fresh install.
func NewSettingsUseCase(
	repo repository.SettingsRepository,
	userRepo repository.UserRepository,
	mu sync.Locker,
	notifier inventory.ChangeNotifier,
	log zerolog.Logger,
	defaultPasscode string,
) *SettingsUseCase {
	return &SettingsUseCase{
		repo:            repo,
		userRepo:        userRepo,
		mu:              mu,
		notifier:        notifier,
		log:             log,
		defaultPasscode: defaultPasscode,
	}
}

// EnsureDefaults seeds settings and profiles on first start. Existing data is left alone.
func (uc *SettingsUseCase) EnsureDefaults(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.repo.Get(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		hash, err := hashPasscode(uc.defaultPasscode)
		if err != nil {
			return err
		}
		s = &entity.Settings{
			Zones:        append([]string(nil), DefaultZones...),
			Categories:   append([]string(nil), DefaultCategories...),
			Departments:  append([]string(nil), DefaultDepartments...),
			PasscodeHash: hash,
			UpdatedAt:    time.Now(),
		}
		if err := uc.repo.Save(ctx, s); err != nil {
			return err
		}
		uc.log.Info().Int("zones", len(s.Zones)).Msg("default settings seeded")
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	now := time.Now()
	for i, u := range DefaultUsers {
		user := u
		user.ID = uuid.New().String()
		user.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		if err := uc.userRepo.Create(ctx, &user); err != nil {
			return err
		}
	}
	uc.log.Info().Int("users", len(DefaultUsers)).Msg("default profiles seeded")
	return nil
}

// Get returns the configured sets.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// AddEntry appends name to one of the sets. Duplicates are rejected.
func (uc *SettingsUseCase) AddEntry(ctx context.Context, set SettingSet, name string) (*dto.SettingsResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: name is required: %w", set, domain.ErrInvalidInput)
	}
	if set == SetZones && name == ledger.GlobalZone {
		return nil, fmt.Errorf("%q is reserved: %w", name, domain.ErrInvalidZone)
	}
	return uc.mutate(ctx, set, func(values []string) ([]string, error) {
		for _, v := range values {
			if strings.EqualFold(v, name) {
				return nil, fmt.Errorf("%s: %q already exists: %w", set, name, domain.ErrDuplicate)
			}
		}
		return append(values, name), nil
	})
}

// RemoveEntry deletes name from one of the sets. The last zone cannot be removed.
func (uc *SettingsUseCase) RemoveEntry(ctx context.Context, set SettingSet, name string) (*dto.SettingsResponse, error) {
	return uc.mutate(ctx, set, func(values []string) ([]string, error) {
		out := make([]string, 0, len(values))
		for _, v := range values {
			if v != name {
				out = append(out, v)
			}
		}
		if len(out) == len(values) {
			return nil, fmt.Errorf("%s: %q: %w", set, name, domain.ErrNotFound)
		}
		if set == SetZones && len(out) == 0 {
			return nil, fmt.Errorf("at least one zone is required: %w", domain.ErrConflict)
		}
		return out, nil
	})
}

func (uc *SettingsUseCase) mutate(ctx context.Context, set SettingSet, fn func([]string) ([]string, error)) (*dto.SettingsResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	var target *[]string
	switch set {
	case SetZones:
		target = &s.Zones
	case SetCategories:
		target = &s.Categories
	case SetDepartments:
		target = &s.Departments
	default:
		return nil, fmt.Errorf("unknown settings set %q: %w", set, domain.ErrInvalidInput)
	}
	next, err := fn(append([]string(nil), (*target)...))
	if err != nil {
		return nil, err
	}
	*target = next
	s.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("set", string(set)).Int("size", len(next)).Msg("settings updated")
	uc.notify()
	return toSettingsResponse(s), nil
}

// ListUsers returns every profile (the public profile selector).
func (uc *SettingsUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// CreateUser adds a profile.
func (uc *SettingsUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("profile name is required: %w", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", in.Role, domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	user := &entity.User{ID: uuid.New().String(), Name: name, Role: role, CreatedAt: time.Now()}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", role).Msg("profile created")
	uc.notify()
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a profile. The active profile and the last profile cannot be removed.
func (uc *SettingsUseCase) DeleteUser(ctx context.Context, actor dto.Actor, id string) error {
	if id == actor.UserID {
		return fmt.Errorf("cannot delete the active profile: %w", domain.ErrConflict)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	if len(users) <= 1 {
		return fmt.Errorf("at least one profile is required: %w", domain.ErrConflict)
	}
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("profile deleted")
	uc.notify()
	return nil
}

// VerifyPasscode reports whether passcode unlocks manager profiles.
func (uc *SettingsUseCase) VerifyPasscode(ctx context.Context, passcode string) (bool, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(s.PasscodeHash), []byte(passcode)) == nil, nil
}

// ChangePasscode replaces the manager passcode after checking the current one.
func (uc *SettingsUseCase) ChangePasscode(ctx context.Context, in dto.ChangePasscodeRequest) error {
	if len(in.New) < MinPasscodeLength {
		return fmt.Errorf("passcode must be at least %d characters: %w", MinPasscodeLength, domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.load(ctx)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(s.PasscodeHash), []byte(in.Current)) != nil {
		return fmt.Errorf("current passcode does not match: %w", domain.ErrUnauthorized)
	}
	hash, err := hashPasscode(in.New)
	if err != nil {
		return err
	}
	s.PasscodeHash = hash
	s.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, s); err != nil {
		return err
	}
	uc.log.Info().Msg("manager passcode changed")
	uc.notify()
	return nil
}

func (uc *SettingsUseCase) load(ctx context.Context) (*entity.Settings, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("settings not initialised: %w", domain.ErrNotFound)
	}
	return s, nil
}

func (uc *SettingsUseCase) notify() {
	if uc.notifier != nil {
		uc.notifier.Notify()
	}
}

func hashPasscode(passcode string) (string, error) {
	if len(passcode) < MinPasscodeLength {
		return "", fmt.Errorf("passcode must be at least %d characters: %w", MinPasscodeLength, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passcode: %w", err)
	}
	return string(hash), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Zones:       s.Zones,
		Categories:  s.Categories,
		Departments: s.Departments,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}
