package upstream

import (
	"context"
	"net/http"

	"github.com/storekeep/adminapi/internal/domain"
)

// profileDTO is the wire shape of a user profile. The core API uses the
// document store's `_id` convention; it is mapped to ID at this boundary.
type profileDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (p profileDTO) toDomain() domain.Profile {
	return domain.Profile{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}

type authResponse struct {
	Token string     `json:"token"`
	User  profileDTO `json:"user"`
}

// Login exchanges dashboard credentials for an upstream token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Credential, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, body, &resp); err != nil {
		return domain.Credential{}, err
	}
	return domain.Credential{Token: resp.Token, User: resp.User.toDomain()}, nil
}

// Register creates a dashboard account upstream and returns its credential.
func (c *Client) Register(ctx context.Context, name, email, password string) (domain.Credential, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, body, &resp); err != nil {
		return domain.Credential{}, err
	}
	return domain.Credential{Token: resp.Token, User: resp.User.toDomain()}, nil
}
