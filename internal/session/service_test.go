package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/identity"
	"github.com/etuitionbd/etuition-cli/internal/logtest"
	"github.com/etuitionbd/etuition-cli/internal/models"
)

// fakeProvider implements identity.Provider with scripted results. It
// notifies its single listener synchronously, like the real provider.
type fakeProvider struct {
	listener func(*models.Profile)
	cancels  int

	signUpProfile    *models.Profile
	signUpErr        error
	signInProfile    *models.Profile
	signInErr        error
	federatedProfile *models.Profile
	federatedErr     error
	signOutErr       error
	updateNameErr    error

	signOutCalls int
	displayNames []string
}

func (f *fakeProvider) Start(ctx context.Context) error { return nil }

func (f *fakeProvider) fire(u *models.Profile) {
	if f.listener != nil {
		f.listener(u)
	}
}

func (f *fakeProvider) SignUp(ctx context.Context, email, password, displayName string) (*models.Profile, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	f.fire(f.signUpProfile)
	return f.signUpProfile, nil
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.fire(f.signInProfile)
	return f.signInProfile, nil
}

func (f *fakeProvider) SignOut(ctx context.Context) error {
	f.signOutCalls++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.fire(nil)
	return nil
}

func (f *fakeProvider) FederatedSignIn(ctx context.Context) (*models.Profile, error) {
	if f.federatedErr != nil {
		return nil, f.federatedErr
	}
	f.fire(f.federatedProfile)
	return f.federatedProfile, nil
}

func (f *fakeProvider) UpdateDisplayName(ctx context.Context, displayName string) error {
	f.displayNames = append(f.displayNames, displayName)
	return f.updateNameErr
}

func (f *fakeProvider) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeProvider) OnAuthStateChanged(cb func(*models.Profile)) *identity.ListenerHandle {
	f.listener = cb
	return identity.NewListenerHandle(func() { f.cancels++; f.listener = nil })
}

// fakeRoles is an in-memory RoleStore that counts writes.
type fakeRoles struct {
	data  map[string]models.Role
	saves int
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{data: map[string]models.Role{}}
}

func (f *fakeRoles) Save(ctx context.Context, id string, role models.Role) error {
	f.saves++
	f.data[id] = role
	return nil
}

func (f *fakeRoles) Load(ctx context.Context, id string) (models.Role, error) {
	return f.data[id], nil
}

func newTestService(t *testing.T) (*Service, *fakeProvider, *fakeRoles) {
	t.Helper()
	fp := &fakeProvider{}
	fr := newFakeRoles()
	svc := NewService(fp, fr, logtest.Discard())
	t.Cleanup(svc.Close)
	return svc, fp, fr
}

func TestService_StartsLoading(t *testing.T) {
	svc, _, _ := newTestService(t)
	snap := svc.Current()
	require.True(t, snap.Loading)
	require.False(t, snap.Authenticated())
}

func TestAuthStateChange_ResolvesWithinSameTick(t *testing.T) {
	svc, fp, _ := newTestService(t)

	var seen []Snapshot
	sub := svc.Subscribe(func(s Snapshot) { seen = append(seen, s) })
	defer sub.Cancel()

	fp.fire(&models.Profile{ID: "uid-1", Email: "a@b.c"})

	// The listener fires synchronously: by the time fire returns, loading
	// is off and the profile is set.
	require.Len(t, seen, 1)
	require.False(t, seen[0].Loading)
	require.True(t, seen[0].Authenticated())
	require.Equal(t, "uid-1", seen[0].Profile.ID)
}

func TestAuthStateChange_NilUserIsAnonymous(t *testing.T) {
	svc, fp, _ := newTestService(t)

	fp.fire(nil)

	snap := svc.Current()
	require.False(t, snap.Loading)
	require.Nil(t, snap.Profile)
	require.Equal(t, models.RoleUnset, snap.Role)
}

func TestRoleResolution_FirstSeenDefaultsToStudentAndPersists(t *testing.T) {
	svc, fp, fr := newTestService(t)

	fp.fire(&models.Profile{ID: "uid-new"})

	require.Equal(t, models.RoleStudent, svc.Current().Role)
	require.Equal(t, models.RoleStudent, fr.data["uid-new"])
	require.Equal(t, 1, fr.saves)

	// A second state change for the same identity reads the persisted
	// default without writing again.
	fp.fire(&models.Profile{ID: "uid-new"})
	require.Equal(t, 1, fr.saves)
	require.Equal(t, models.RoleStudent, svc.Current().Role)
}

func TestRoleResolution_KnownIdentityKeepsStoredRole(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fr.data["uid-t"] = models.RoleTutor

	fp.fire(&models.Profile{ID: "uid-t"})

	require.Equal(t, models.RoleTutor, svc.Current().Role)
	require.Zero(t, fr.saves)
}

func TestRoleResolution_IsolationAcrossIdentities(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fr.data["uid-a"] = models.RoleTutor

	fp.fire(&models.Profile{ID: "uid-a"})
	require.Equal(t, models.RoleTutor, svc.Current().Role)

	// Switch to a never-seen identity: must not leak uid-a's role.
	fp.fire(&models.Profile{ID: "uid-b"})
	require.Equal(t, models.RoleStudent, svc.Current().Role)
	require.Equal(t, models.RoleTutor, fr.data["uid-a"])
	require.Equal(t, models.RoleStudent, fr.data["uid-b"])
}

func TestSignUp_PersistsChosenRole(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fp.signUpProfile = &models.Profile{ID: "uid-s", Email: "s@x.y", DisplayName: "S"}

	profile, err := svc.SignUp(context.Background(), "s@x.y", "pw123", "S", models.RoleTutor)
	require.NoError(t, err)
	require.Equal(t, "uid-s", profile.ID)

	// The persisted role is exactly tutor, not the default.
	require.Equal(t, models.RoleTutor, fr.data["uid-s"])
	require.Equal(t, models.RoleTutor, svc.Current().Role)
}

func TestSignUp_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), "", "pw", "Name", models.RoleStudent)
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.SignUp(context.Background(), "a@b.c", "pw", "", models.RoleStudent)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSignUp_ProviderRejection(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fp.signUpErr = common.ErrCredential

	_, err := svc.SignUp(context.Background(), "a@b.c", "weak", "N", models.RoleStudent)
	require.ErrorIs(t, err, common.ErrCredential)
	require.Zero(t, fr.saves)
}

func TestLogin_TransitionsToAuthenticated(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fr.data["uid-1"] = models.RoleAdmin
	fp.signInProfile = &models.Profile{ID: "uid-1", Email: "a@b.c"}

	_, err := svc.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	snap := svc.Current()
	require.False(t, snap.Loading)
	require.True(t, snap.Authenticated())
	require.Equal(t, models.RoleAdmin, snap.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.signInErr = common.ErrCredential

	_, err := svc.Login(context.Background(), "a@b.c", "bad")
	require.ErrorIs(t, err, common.ErrCredential)
	require.False(t, svc.Current().Authenticated())
}

func TestLogin_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestLogout_ClearsIdentityAndRole(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.signInProfile = &models.Profile{ID: "uid-1"}
	_, err := svc.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	snap := svc.Current()
	require.Nil(t, snap.Profile)
	require.Equal(t, models.RoleUnset, snap.Role)

	// Idempotent.
	require.NoError(t, svc.Logout(context.Background()))
	require.Equal(t, 2, fp.signOutCalls)
}

func TestFederatedSignIn_PersistsRoleLikeSignUp(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fp.federatedProfile = &models.Profile{ID: "uid-g", Email: "g@gmail.com"}

	profile, err := svc.FederatedSignIn(context.Background(), models.RoleTutor)
	require.NoError(t, err)
	require.Equal(t, "uid-g", profile.ID)
	require.Equal(t, models.RoleTutor, fr.data["uid-g"])
}

func TestFederatedSignIn_UnsetRoleKeepsStoredRole(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fr.data["uid-g"] = models.RoleTutor
	fp.federatedProfile = &models.Profile{ID: "uid-g", Email: "g@gmail.com"}

	// Signing back in without picking a role must not demote the tutor.
	_, err := svc.FederatedSignIn(context.Background(), models.RoleUnset)
	require.NoError(t, err)
	require.Equal(t, models.RoleTutor, fr.data["uid-g"])
	require.Equal(t, models.RoleTutor, svc.Current().Role)
}

func TestFederatedSignIn_UnsetRoleStillDefaultsFirstTimers(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fp.federatedProfile = &models.Profile{ID: "uid-new"}

	_, err := svc.FederatedSignIn(context.Background(), models.RoleUnset)
	require.NoError(t, err)

	// The auth-state callback resolved and persisted the default once.
	require.Equal(t, models.RoleStudent, fr.data["uid-new"])
	require.Equal(t, 1, fr.saves)
}

func TestUpdateRole_NoOpWhenAnonymous(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fp.fire(nil)

	require.NoError(t, svc.UpdateRole(context.Background(), models.RoleAdmin))
	require.Zero(t, fr.saves)
}

func TestUpdateRole_PersistsForCurrentIdentity(t *testing.T) {
	svc, fp, fr := newTestService(t)
	fp.fire(&models.Profile{ID: "uid-1"})

	require.NoError(t, svc.UpdateRole(context.Background(), models.RoleTutor))
	require.Equal(t, models.RoleTutor, fr.data["uid-1"])
	require.Equal(t, models.RoleTutor, svc.Current().Role)
}

func TestSetProfile_MergesBackendFields(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.fire(&models.Profile{ID: "uid-1", Email: "a@b.c", DisplayName: "A"})

	phone := "0171234567"
	bio := "Physics tutor"
	svc.SetProfile(models.ProfilePatch{Phone: &phone, Bio: &bio})

	snap := svc.Current()
	require.Equal(t, "0171234567", snap.Profile.Phone)
	require.Equal(t, "Physics tutor", snap.Profile.Bio)
	require.Equal(t, "a@b.c", snap.Profile.Email)
}

func TestSetProfile_NoOpWhenAnonymous(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.fire(nil)

	phone := "x"
	svc.SetProfile(models.ProfilePatch{Phone: &phone})
	require.Nil(t, svc.Current().Profile)
}

func TestSubscribe_CancelStopsNotifications(t *testing.T) {
	svc, fp, _ := newTestService(t)

	count := 0
	sub := svc.Subscribe(func(Snapshot) { count++ })

	fp.fire(&models.Profile{ID: "uid-1"})
	require.Equal(t, 1, count)

	sub.Cancel()
	fp.fire(nil)
	require.Equal(t, 1, count)
}

func TestClose_ReleasesProviderSubscription(t *testing.T) {
	fp := &fakeProvider{}
	svc := NewService(fp, newFakeRoles(), logtest.Discard())
	svc.Close()
	require.Equal(t, 1, fp.cancels)
	require.Nil(t, fp.listener)
}

func TestLogout_ErrorPropagates(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.signOutErr = errors.New("io")
	require.Error(t, svc.Logout(context.Background()))
}

func TestUpdateDisplayName(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.fire(&models.Profile{ID: "uid-1", DisplayName: "Old"})

	require.NoError(t, svc.UpdateDisplayName(context.Background(), "New Name"))
	require.Equal(t, []string{"New Name"}, fp.displayNames)
	require.Equal(t, "New Name", svc.Current().Profile.DisplayName)

	require.ErrorIs(t, svc.UpdateDisplayName(context.Background(), ""), common.ErrValidation)
}

func TestUpdateDisplayName_AnonymousIsNoop(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.fire(nil)

	require.NoError(t, svc.UpdateDisplayName(context.Background(), "New Name"))
	require.Empty(t, fp.displayNames)
}

func TestUpdateDisplayName_ProviderErrorLeavesProfile(t *testing.T) {
	svc, fp, _ := newTestService(t)
	fp.updateNameErr = errors.New("io")
	fp.fire(&models.Profile{ID: "uid-1", DisplayName: "Old"})

	require.Error(t, svc.UpdateDisplayName(context.Background(), "New Name"))
	require.Equal(t, "Old", svc.Current().Profile.DisplayName)
}
