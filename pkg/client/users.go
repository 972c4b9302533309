package client

import (
	"context"
	"net/http"

	"sandgrund/pkg/model"
)

const usersBasePath = "/api/v1/users"

type UsersClient struct {
	httpClient *HttpClient
}

func NewUsersClient(httpClient *HttpClient) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// LogIn is the only call that does not need a token. On success the token is
// stored on the underlying HttpClient.
func (c *UsersClient) LogIn(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.do(ctx, http.MethodPost, usersBasePath+"/logIn", body, "application/json")
	if err != nil {
		return nil, err
	}

	session, err := decodeData[model.Session](resp)
	if err != nil {
		return nil, err
	}
	c.httpClient.Token = session.Token
	return session, nil
}

// ResetPassword issues a password-reset token for email and returns it.
func (c *UsersClient) ResetPassword(ctx context.Context, email string) (string, error) {
	resp, err := c.httpClient.POST(ctx, usersBasePath+"/resetPassword", model.ResetRequest{Email: email})
	if err != nil {
		return "", err
	}

	var body struct {
		ResetToken string `json:"resetToken"`
	}
	if err := decode(resp, &body); err != nil {
		return "", err
	}
	return body.ResetToken, nil
}

func (c *UsersClient) LogOut(ctx context.Context) error {
	resp, err := c.httpClient.POST(ctx, usersBasePath+"/logOut", nil)
	if err != nil {
		return err
	}
	if err := decode(resp, nil); err != nil {
		return err
	}
	c.httpClient.Token = ""
	return nil
}
