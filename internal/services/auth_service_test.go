package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sojourn/internal/models/request_models"
	"sojourn/pkg/utils"
)

func init() {
	utils.ConfigureJWT("auth-service-test-secret", time.Hour)
}

// recordingMail captures the reset token instead of sending anything.
type recordingMail struct {
	lastTo    string
	lastToken string
	fail      bool
}

func (m *recordingMail) SendPasswordReset(to, token string) error {
	if m.fail {
		return assert.AnError
	}
	m.lastTo = to
	m.lastToken = token
	return nil
}

type authFixture struct {
	svc      AuthServiceInterface
	userRepo *fakeUserRepo
	mail     *recordingMail
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	mail := &recordingMail{}
	return &authFixture{
		svc:      NewAuthService(userRepo, mail, zerolog.Nop()),
		userRepo: userRepo,
		mail:     mail,
	}
}

func signUpRequest() request_models.SignUpRequest {
	return request_models.SignUpRequest{
		Email:    "traveler@example.com",
		Username: "traveler",
		Password: "a-long-password",
	}
}

func TestSignUpIssuesTokenPair(t *testing.T) {
	fx := newAuthFixture(t)

	tokens, err := fx.svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	fx := newAuthFixture(t)

	req := signUpRequest()
	req.Password = "short"
	_, err := fx.svc.SignUp(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrWeakPassword)
}

func TestSignUpDuplicates(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	dup := signUpRequest()
	dup.Username = "someone-else"
	_, err = fx.svc.SignUp(ctx, dup)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	dup = signUpRequest()
	dup.Email = "else@example.com"
	_, err = fx.svc.SignUp(ctx, dup)
	assert.ErrorIs(t, err, utils.ErrUsernameAlreadyExists)
}

func TestSignUpNormalizesEmail(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	req := signUpRequest()
	req.Email = "  Traveler@Example.COM "
	_, err := fx.svc.SignUp(ctx, req)
	require.NoError(t, err)

	user, err := fx.userRepo.FindByEmail(ctx, "traveler@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestLoginByEmailOrUsername(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	_, err = fx.svc.Login(ctx, request_models.LoginRequest{Login: "traveler@example.com", Password: "a-long-password"})
	assert.NoError(t, err)

	_, err = fx.svc.Login(ctx, request_models.LoginRequest{Login: "traveler", Password: "a-long-password"})
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	_, wrongPassword := fx.svc.Login(ctx, request_models.LoginRequest{Login: "traveler", Password: "wrong-password"})
	_, unknownUser := fx.svc.Login(ctx, request_models.LoginRequest{Login: "nobody", Password: "a-long-password"})

	assert.ErrorIs(t, wrongPassword, utils.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, utils.ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	fresh, err := fx.svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	_, err = fx.svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	require.NoError(t, fx.svc.RequestPasswordReset(ctx, "traveler@example.com"))
	require.NotEmpty(t, fx.mail.lastToken)

	require.NoError(t, fx.svc.ConfirmPasswordReset(ctx, fx.mail.lastToken, "brand-new-password"))

	_, err = fx.svc.Login(ctx, request_models.LoginRequest{Login: "traveler", Password: "brand-new-password"})
	assert.NoError(t, err)
	_, err = fx.svc.Login(ctx, request_models.LoginRequest{Login: "traveler", Password: "a-long-password"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestPasswordResetTokenIsSingleUse(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	require.NoError(t, fx.svc.RequestPasswordReset(ctx, "traveler@example.com"))
	token := fx.mail.lastToken

	require.NoError(t, fx.svc.ConfirmPasswordReset(ctx, token, "brand-new-password"))
	err = fx.svc.ConfirmPasswordReset(ctx, token, "another-password")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestPasswordResetUnknownEmailSilent(t *testing.T) {
	fx := newAuthFixture(t)

	err := fx.svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, fx.mail.lastToken, "no mail for unknown addresses")
}

func TestPasswordResetMailFailureIsSwallowed(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	fx.mail.fail = true
	assert.NoError(t, fx.svc.RequestPasswordReset(ctx, "traveler@example.com"))
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	_, err := fx.svc.SignUp(ctx, signUpRequest())
	require.NoError(t, err)

	require.NoError(t, fx.svc.RequestPasswordReset(ctx, "traveler@example.com"))
	token := fx.mail.lastToken

	// Age the stored row past its TTL.
	row := fx.userRepo.resetTokens[token]
	require.NotNil(t, row)
	row.ExpiresAt = time.Now().Add(-time.Minute)

	err = fx.svc.ConfirmPasswordReset(ctx, token, "brand-new-password")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
