package service

import (
	"context"
	"net/http"
	"time"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/repository/store"
)

const dateLayout = "2006-01-02"

type SocialsInput struct {
	Website   *string `json:"website" binding:"omitempty,max=255"`
	Twitter   *string `json:"twitter" binding:"omitempty,max=255"`
	Instagram *string `json:"instagram" binding:"omitempty,max=255"`
	LinkedIn  *string `json:"linkedin" binding:"omitempty,max=255"`
	Github    *string `json:"github" binding:"omitempty,max=255"`
}

type AddressInput struct {
	Street     *string `json:"street" binding:"omitempty,max=255"`
	City       *string `json:"city" binding:"omitempty,max=128"`
	State      *string `json:"state" binding:"omitempty,max=128"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=32"`
	Country    *string `json:"country" binding:"omitempty,max=128"`
}

// ProfileInput carries only the keys present in the request body.
type ProfileInput struct {
	FirstName   *string       `json:"first_name" binding:"omitempty,max=64"`
	LastName    *string       `json:"last_name" binding:"omitempty,max=64"`
	Bio         *string       `json:"bio" binding:"omitempty,max=2000"`
	AvatarURL   *string       `json:"avatar_url" binding:"omitempty,max=512"`
	PhoneNumber *string       `json:"phone_number" binding:"omitempty,max=32"`
	DateOfBirth *string       `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Socials     *SocialsInput `json:"socials"`
	Address     *AddressInput `json:"address"`
}

type SocialsView struct {
	Website   string `json:"website"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Github    string `json:"github"`
}

type AddressView struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ProfileView holds the public subset; the private fields are nil when redacted.
type ProfileView struct {
	ID        string      `json:"id"`
	AccountID string      `json:"account_id"`
	Username  string      `json:"username"`
	Role      model.Role  `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	AvatarURL string      `json:"avatar_url"`
	Socials   SocialsView `json:"socials"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Email       *string      `json:"email,omitempty"`
	PhoneNumber *string      `json:"phone_number,omitempty"`
	DateOfBirth *string      `json:"date_of_birth,omitempty"`
	Address     *AddressView `json:"address,omitempty"`
}

type ProfileService struct {
	accounts *store.AccountRepository
	profiles *store.ProfileRepository
	engine   *authz.Engine
}

func NewProfileService(accounts *store.AccountRepository, profiles *store.ProfileRepository, engine *authz.Engine) *ProfileService {
	return &ProfileService{accounts: accounts, profiles: profiles, engine: engine}
}

// Get looks the owner up by account id or username and redacts private fields
// unless the viewer may see them.
func (s *ProfileService) Get(ctx context.Context, viewer authz.Identity, identifier string) (*ProfileView, error) {
	acct, err := s.ownerByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	b, err := s.profiles.FindByAccount(ctx, acct.ID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, apperr.Internal(err)
	}
	return buildProfileView(acct, b, authz.CanViewPrivate(viewer, acct.ID)), nil
}

func (s *ProfileService) ownerByIdentifier(ctx context.Context, identifier string) (*model.Account, error) {
	acct, err := s.accounts.FindByID(ctx, identifier)
	if store.IsNotFound(err) {
		acct, err = s.accounts.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal(err)
	}
	return acct, nil
}

// Create writes profile, socials and address together for the actor.
func (s *ProfileService) Create(ctx context.Context, actor authz.Identity, in ProfileInput) (*ProfileView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionProfileCreate, authz.OwnedBy(actor.ID)); err != nil {
		return nil, err
	}
	acct, err := s.accounts.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	exists, err := s.profiles.ExistsForAccount(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, profileExists()
	}

	changes, err := profileChanges(in)
	if err != nil {
		return nil, err
	}
	b := &store.ProfileBundle{
		Profile: model.Profile{AccountID: actor.ID},
		Socials: model.Socials{AccountID: actor.ID},
		Address: model.Address{AccountID: actor.ID},
	}
	applyProfile(&b.Profile, changes.Profile)
	applySocials(&b.Socials, changes.Socials)
	applyAddress(&b.Address, changes.Address)

	if err := s.profiles.Create(ctx, b); err != nil {
		if store.IsDuplicate(err) {
			return nil, profileExists()
		}
		return nil, apperr.Internal(err)
	}
	return buildProfileView(acct, b, true), nil
}

// Update writes only the supplied keys. A request with none is a not-found no-op.
func (s *ProfileService) Update(ctx context.Context, actor authz.Identity, username string, in ProfileInput) (*ProfileView, error) {
	acct, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal(err)
	}
	if err := s.engine.Require(ctx, actor, authz.ActionProfileUpdate, authz.OwnedBy(acct.ID)); err != nil {
		return nil, err
	}
	changes, err := profileChanges(in)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return nil, apperr.NoChanges()
	}
	if err := s.profiles.Update(ctx, acct.ID, changes); err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, apperr.Internal(err)
	}
	b, err := s.profiles.FindByAccount(ctx, acct.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return buildProfileView(acct, b, true), nil
}

func profileExists() *apperr.Error {
	return apperr.Conflict(apperr.ReasonProfileExists, "profile already exists").WithStatus(http.StatusBadRequest)
}

func profileChanges(in ProfileInput) (store.ProfileChanges, error) {
	c := store.ProfileChanges{Profile: map[string]any{}, Socials: map[string]any{}, Address: map[string]any{}}
	set := func(m map[string]any, col string, v *string) {
		if v != nil {
			m[col] = *v
		}
	}
	set(c.Profile, "first_name", in.FirstName)
	set(c.Profile, "last_name", in.LastName)
	set(c.Profile, "bio", in.Bio)
	set(c.Profile, "avatar_url", in.AvatarURL)
	set(c.Profile, "phone_number", in.PhoneNumber)
	if in.DateOfBirth != nil {
		t, err := time.Parse(dateLayout, *in.DateOfBirth)
		if err != nil {
			return c, apperr.Validation("invalid input", apperr.FieldError{
				Field: "date_of_birth", Rule: "datetime", Message: "date_of_birth must be YYYY-MM-DD",
			})
		}
		c.Profile["date_of_birth"] = t
	}
	if in.Socials != nil {
		set(c.Socials, "website", in.Socials.Website)
		set(c.Socials, "twitter", in.Socials.Twitter)
		set(c.Socials, "instagram", in.Socials.Instagram)
		set(c.Socials, "linked_in", in.Socials.LinkedIn)
		set(c.Socials, "github", in.Socials.Github)
	}
	if in.Address != nil {
		set(c.Address, "street", in.Address.Street)
		set(c.Address, "city", in.Address.City)
		set(c.Address, "state", in.Address.State)
		set(c.Address, "postal_code", in.Address.PostalCode)
		set(c.Address, "country", in.Address.Country)
	}
	return c, nil
}

func str(m map[string]any, key string, dst *string) {
	if v, ok := m[key].(string); ok {
		*dst = v
	}
}

func applyProfile(p *model.Profile, m map[string]any) {
	str(m, "first_name", &p.FirstName)
	str(m, "last_name", &p.LastName)
	str(m, "bio", &p.Bio)
	str(m, "avatar_url", &p.AvatarURL)
	str(m, "phone_number", &p.PhoneNumber)
	if t, ok := m["date_of_birth"].(time.Time); ok {
		p.DateOfBirth = &t
	}
}

func applySocials(s *model.Socials, m map[string]any) {
	str(m, "website", &s.Website)
	str(m, "twitter", &s.Twitter)
	str(m, "instagram", &s.Instagram)
	str(m, "linked_in", &s.LinkedIn)
	str(m, "github", &s.Github)
}

func applyAddress(a *model.Address, m map[string]any) {
	str(m, "street", &a.Street)
	str(m, "city", &a.City)
	str(m, "state", &a.State)
	str(m, "postal_code", &a.PostalCode)
	str(m, "country", &a.Country)
}

func buildProfileView(acct *model.Account, b *store.ProfileBundle, private bool) *ProfileView {
	v := &ProfileView{
		ID:        b.Profile.ID,
		AccountID: acct.ID,
		Username:  acct.Username,
		Role:      acct.Role,
		FirstName: b.Profile.FirstName,
		LastName:  b.Profile.LastName,
		Bio:       b.Profile.Bio,
		AvatarURL: b.Profile.AvatarURL,
		Socials: SocialsView{
			Website:   b.Socials.Website,
			Twitter:   b.Socials.Twitter,
			Instagram: b.Socials.Instagram,
			LinkedIn:  b.Socials.LinkedIn,
			Github:    b.Socials.Github,
		},
		CreatedAt: b.Profile.CreatedAt,
		UpdatedAt: b.Profile.UpdatedAt,
	}
	if !private {
		return v
	}
	email, phone := acct.Email, b.Profile.PhoneNumber
	v.Email, v.PhoneNumber = &email, &phone
	if b.Profile.DateOfBirth != nil {
		dob := b.Profile.DateOfBirth.Format(dateLayout)
		v.DateOfBirth = &dob
	}
	v.Address = &AddressView{
		Street:     b.Address.Street,
		City:       b.Address.City,
		State:      b.Address.State,
		PostalCode: b.Address.PostalCode,
		Country:    b.Address.Country,
	}
	return v
}
