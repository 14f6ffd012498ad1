package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestMergeProfile_EmptyPatchIsIdentity(t *testing.T) {
	base := Profile{ID: "u1", Email: "a@b.c", DisplayName: "A", Phone: "123"}
	got := MergeProfile(base, ProfilePatch{})
	require.Equal(t, base, got)
}

func TestMergeProfile_PatchOverwritesOnlySetFields(t *testing.T) {
	base := Profile{ID: "u1", Email: "a@b.c", DisplayName: "A", Bio: "old"}
	got := MergeProfile(base, ProfilePatch{
		Phone: strptr("017"),
		Bio:   strptr("new bio"),
	})

	require.Equal(t, "u1", got.ID)
	require.Equal(t, "a@b.c", got.Email)
	require.Equal(t, "A", got.DisplayName)
	require.Equal(t, "017", got.Phone)
	require.Equal(t, "new bio", got.Bio)
}

func TestMergeProfile_ExplicitEmptyClearsField(t *testing.T) {
	base := Profile{ID: "u1", Address: "Dhaka"}
	got := MergeProfile(base, ProfilePatch{Address: strptr("")})
	require.Empty(t, got.Address)
}
