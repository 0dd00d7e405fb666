package application

import (
	"context"
	"strings"
	"testing"
	"time"

	otplib "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastrolabs/cadastro-api/pkg/totp"
)

func newTwoFactorFixture(t *testing.T) (*TwoFactorService, *fakeRepo, int64) {
	t.Helper()
	repo := newFakeRepo()
	jwt := testJWT()

	auth := NewAuthService(repo, jwt, nil)
	reg, err := auth.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	svc := NewTwoFactorService(repo, jwt, totp.NewEngine("cadastro-test"), nil)
	return svc, repo, reg.User.ID
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := otplib.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

func TestTwoFactorEnrollmentFlow(t *testing.T) {
	svc, repo, id := newTwoFactorFixture(t)
	ctx := context.Background()

	setup, err := svc.Setup(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.True(t, strings.HasPrefix(setup.QRCode, "data:image/png;base64,"))

	// Secret stored but 2FA still off
	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, setup.Secret, u.TwoFactorSecret)
	assert.False(t, u.TwoFactorEnabled)

	// First valid code flips the switch and logs in
	res, err := svc.Verify(ctx, "maria@example.com", currentCode(t, setup.Secret))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	u, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.TwoFactorEnabled)

	// Subsequent 2FA login works and mutates nothing
	res, err = svc.LoginWith2FA(ctx, "maria@example.com", currentCode(t, setup.Secret))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestTwoFactorVerifyRejectsWrongCode(t *testing.T) {
	svc, repo, id := newTwoFactorFixture(t)
	ctx := context.Background()

	setup, err := svc.Setup(ctx, "maria@example.com")
	require.NoError(t, err)

	valid := map[string]bool{}
	for _, offset := range []time.Duration{-30 * time.Second, 0, 30 * time.Second} {
		code, err := otplib.GenerateCode(setup.Secret, time.Now().Add(offset))
		require.NoError(t, err)
		valid[code] = true
	}
	wrong := ""
	for _, candidate := range []string{"000000", "111111", "222222", "333333"} {
		if !valid[candidate] {
			wrong = candidate
			break
		}
	}
	require.NotEmpty(t, wrong)

	_, err = svc.Verify(ctx, "maria@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, u.TwoFactorEnabled, "failed verify must not enable 2FA")
}

func TestTwoFactorVerifyIsIdempotentOnceEnabled(t *testing.T) {
	svc, _, _ := newTwoFactorFixture(t)
	ctx := context.Background()

	setup, err := svc.Setup(ctx, "maria@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "maria@example.com", currentCode(t, setup.Secret))
	require.NoError(t, err)

	// Second verify with a fresh code still succeeds
	res, err := svc.Verify(ctx, "maria@example.com", currentCode(t, setup.Secret))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestTwoFactorReSetupReplacesPendingSecret(t *testing.T) {
	svc, repo, id := newTwoFactorFixture(t)
	ctx := context.Background()

	first, err := svc.Setup(ctx, "maria@example.com")
	require.NoError(t, err)
	second, err := svc.Setup(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.Secret, second.Secret)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, second.Secret, u.TwoFactorSecret)
}

func TestVerifyWithoutSetupRejected(t *testing.T) {
	svc, repo, id := newTwoFactorFixture(t)
	ctx := context.Background()

	// The empty string decodes as a valid base32 key, so a code computed
	// against it must not activate 2FA for an account that never enrolled.
	code, err := otplib.GenerateCode("", time.Now())
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "maria@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, u.TwoFactorEnabled)
	assert.Empty(t, u.TwoFactorSecret)
}

func TestTwoFactorLoginRequiresEnrollment(t *testing.T) {
	svc, _, _ := newTwoFactorFixture(t)
	ctx := context.Background()

	// Setup done but never verified
	_, err := svc.Setup(ctx, "maria@example.com")
	require.NoError(t, err)

	_, err = svc.LoginWith2FA(ctx, "maria@example.com", "123456")
	assert.ErrorIs(t, err, ErrTwoFactorNotEnabled)

	_, err = svc.LoginWith2FA(ctx, "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFullEnrollmentJourney(t *testing.T) {
	repo := newFakeRepo()
	jwt := testJWT()
	auth := NewAuthService(repo, jwt, nil)
	twofa := NewTwoFactorService(repo, jwt, totp.NewEngine("cadastro-test"), nil)
	ctx := context.Background()

	reg, err := auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)

	// Plain login works while 2FA is off
	res, err := auth.Login(ctx, "maria@example.com", "Str0ngPass!")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.False(t, res.RequiresTwoFactor)

	setup, err := twofa.Setup(ctx, "maria@example.com")
	require.NoError(t, err)

	_, err = twofa.Verify(ctx, "maria@example.com", currentCode(t, setup.Secret))
	require.NoError(t, err)

	// From now on plain login withholds the token
	res, err = auth.Login(ctx, "maria@example.com", "Str0ngPass!")
	require.NoError(t, err)
	assert.True(t, res.RequiresTwoFactor)
	assert.Empty(t, res.Token)

	tok, err := twofa.LoginWith2FA(ctx, "maria@example.com", currentCode(t, setup.Secret))
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
}

func TestTwoFactorSetupUnknownUser(t *testing.T) {
	svc, _, _ := newTwoFactorFixture(t)
	_, err := svc.Setup(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
