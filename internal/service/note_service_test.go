package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity/internal/service"
)

func TestNoteService_Create_DeduplicatesTagNames(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")

	// Act: the same tag under two casings plus a distinct one
	note, err := f.notes.Create(ctx, alice, "Trip", "pack light", []string{"Travel", "travel", "Packing"})
	require.NoError(t, err)

	// Assert
	require.Len(t, note.Tags, 2)
	names := []string{note.Tags[0].Name, note.Tags[1].Name}
	assert.ElementsMatch(t, []string{"Travel", "Packing"}, names)
}

func TestNoteService_Create_EmptyTitle(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice@example.com")

	_, err := f.notes.Create(context.Background(), alice, "  ", "body", nil)

	var invalid *service.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestNoteService_GetByID_OwnershipAndExistence(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")
	bob := f.createUser(t, "bob@example.com")

	note, err := f.notes.Create(ctx, alice, "Secret", "", nil)
	require.NoError(t, err)

	// Act + Assert: another user's read is rejected, not hidden
	_, err = f.notes.GetByID(ctx, note.ID, bob)
	var unauthorized *service.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)

	// A missing note is not found even for the would-be owner
	_, err = f.notes.GetByID(ctx, uuid.New(), alice)
	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNoteService_Delete_GoneForEveryone(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")
	bob := f.createUser(t, "bob@example.com")

	note, err := f.notes.Create(ctx, alice, "Temp", "", nil)
	require.NoError(t, err)

	// Act
	require.NoError(t, f.notes.Delete(ctx, note.ID, alice))

	// Assert: once deleted the note is not found, even for the previous owner,
	// and a stranger gets the same answer
	var notFound *service.NotFoundError
	_, err = f.notes.GetByID(ctx, note.ID, alice)
	assert.ErrorAs(t, err, &notFound)
	_, err = f.notes.GetByID(ctx, note.ID, bob)
	assert.ErrorAs(t, err, &notFound)
}

func TestNoteService_Delete_PreservesSharedTags(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")

	first, err := f.notes.Create(ctx, alice, "One", "", []string{"Keep"})
	require.NoError(t, err)
	second, err := f.notes.Create(ctx, alice, "Two", "", []string{"Keep"})
	require.NoError(t, err)

	// Act
	require.NoError(t, f.notes.Delete(ctx, first.ID, alice))

	// Assert: the tag survives on the remaining note
	reloaded, err := f.notes.GetByID(ctx, second.ID, alice)
	require.NoError(t, err)
	require.Len(t, reloaded.Tags, 1)
	assert.Equal(t, "Keep", reloaded.Tags[0].Name)
}

func TestNoteService_ListForUser_DefaultPageSize(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")
	bob := f.createUser(t, "bob@example.com")

	for i := 0; i < 12; i++ {
		_, err := f.notes.Create(ctx, alice, "Note", "", nil)
		require.NoError(t, err)
	}
	_, err := f.notes.Create(ctx, bob, "Not alice's", "", nil)
	require.NoError(t, err)

	// Act
	page, err := f.notes.ListForUser(ctx, alice, service.PageRequest{})
	require.NoError(t, err)

	// Assert: only alice's notes count, sized by the default
	assert.Len(t, page.Items, service.DefaultPageSize)
	assert.Equal(t, int64(12), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	second, err := f.notes.ListForUser(ctx, alice, service.PageRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
}

func TestNoteService_ListForUser_RecentlyUpdatedFirst(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")

	older, err := f.notes.Create(ctx, alice, "Older", "", nil)
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, alice, "Newer", "", nil)
	require.NoError(t, err)

	// Act: touching the older note moves it to the front
	_, err = f.notes.Update(ctx, older.ID, alice, "Older, touched", "", nil)
	require.NoError(t, err)

	page, err := f.notes.ListForUser(ctx, alice, service.PageRequest{})
	require.NoError(t, err)

	// Assert
	require.Len(t, page.Items, 2)
	assert.Equal(t, older.ID, page.Items[0].ID)
}

func TestNoteService_Update_NilTagsLeavesTagsAlone(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")

	note, err := f.notes.Create(ctx, alice, "Trip", "", []string{"Travel"})
	require.NoError(t, err)

	// Act
	updated, err := f.notes.Update(ctx, note.ID, alice, "Trip v2", "notes", nil)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Trip v2", updated.Title)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Travel", updated.Tags[0].Name)
}

func TestNoteService_Update_EmptySliceClearsTags(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")

	note, err := f.notes.Create(ctx, alice, "Trip", "", []string{"Travel"})
	require.NoError(t, err)

	// Act: an explicit empty set is a clear, unlike nil
	empty := []string{}
	updated, err := f.notes.Update(ctx, note.ID, alice, "Trip", "", &empty)
	require.NoError(t, err)

	// Assert
	assert.Empty(t, updated.Tags)
}

func TestNoteService_Update_ReplacesTagSet(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")

	note, err := f.notes.Create(ctx, alice, "Trip", "", []string{"Travel", "Old"})
	require.NoError(t, err)

	// Act
	next := []string{"travel", "New"}
	updated, err := f.notes.Update(ctx, note.ID, alice, "Trip", "", &next)
	require.NoError(t, err)

	// Assert: existing "Travel" is reused under its original casing
	require.Len(t, updated.Tags, 2)
	names := []string{updated.Tags[0].Name, updated.Tags[1].Name}
	assert.ElementsMatch(t, []string{"Travel", "New"}, names)
}

func TestNoteService_Search_MatchesTitleOrContent(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")
	bob := f.createUser(t, "bob@example.com")

	_, err := f.notes.Create(ctx, alice, "Grocery run", "milk, eggs", nil)
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, alice, "Ideas", "grocery delivery startup", nil)
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, alice, "Unrelated", "nothing here", nil)
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, bob, "Grocery too", "", nil)
	require.NoError(t, err)

	// Act
	page, err := f.notes.Search(ctx, alice, "grocery", service.PageRequest{})
	require.NoError(t, err)

	// Assert: case-insensitive, title and content, owner-scoped
	assert.Equal(t, int64(2), page.TotalItems)
}

func TestNoteService_ListByTag(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com")
	bob := f.createUser(t, "bob@example.com")

	_, err := f.notes.Create(ctx, alice, "Trip", "", []string{"Travel"})
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, alice, "Other", "", []string{"Misc"})
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, bob, "Bob's trip", "", []string{"Travel"})
	require.NoError(t, err)

	// Act
	page, err := f.notes.ListByTag(ctx, alice, "travel", service.PageRequest{})
	require.NoError(t, err)

	// Assert
	require.Equal(t, int64(1), page.TotalItems)
	assert.Equal(t, "Trip", page.Items[0].Title)
}
