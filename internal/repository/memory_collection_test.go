package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
	Level int    `json:"level"`
	Refs  []ref  `json:"refs,omitempty"`
}

func seed(t *testing.T, docs ...record) *MemoryCollection[record] {
	t.Helper()
	coll := NewMemoryCollection[record]("records")
	for _, doc := range docs {
		require.NoError(t, coll.Insert(context.Background(), doc.ID, doc))
	}
	return coll
}

func TestContainment(t *testing.T) {
	doc := map[string]any{
		"name":  "Support",
		"level": float64(2),
		"refs": []any{
			map[string]any{"id": "a", "name": "A"},
			map[string]any{"id": "b", "name": "B"},
		},
	}
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"scalar", Filter{"name": "Support"}, true},
		{"scalar mismatch", Filter{"name": "Sales"}, false},
		{"number", Filter{"level": 2}, true},
		{"missing key", Filter{"owner": "x"}, false},
		{"array element by id", Filter{"refs": []any{map[string]any{"id": "b"}}}, true},
		{"array element unknown", Filter{"refs": []any{map[string]any{"id": "z"}}}, false},
		{"array all elements", Filter{"refs": []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}}, true},
		{"object against scalar", Filter{"name": map[string]any{"id": "x"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := normalize(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contains(doc, frag))
		})
	}
}

func TestMemoryCollectionFind(t *testing.T) {
	ctx := context.Background()
	coll := seed(t,
		record{ID: "1", Name: "one", Owner: "x", Level: 1},
		record{ID: "2", Name: "two", Owner: "y", Level: 2},
		record{ID: "3", Name: "three", Owner: "x", Level: 3},
	)

	all, err := coll.Find(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	owned, err := coll.Find(ctx, Filter{"owner": "x"})
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	count, err := coll.Count(ctx, Filter{"owner": "y"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	one, err := coll.FindOne(ctx, Filter{"name": "three"})
	require.NoError(t, err)
	assert.Equal(t, "3", one.ID)

	_, err = coll.FindOne(ctx, Filter{"name": "four"})
	assert.ErrorIs(t, err, ErrNotFound)

	none, err := coll.Find(ctx, Filter{"owner": "z"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryCollectionFindByIDs(t *testing.T) {
	ctx := context.Background()
	coll := seed(t, record{ID: "1"}, record{ID: "2"}, record{ID: "3"})

	docs, err := coll.FindByIDs(ctx, []string{"3", "1", "1", "missing"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, "3", docs[1].ID)
}

func TestMemoryCollectionFindByID(t *testing.T) {
	ctx := context.Background()
	coll := seed(t, record{ID: "1", Name: "one"})

	doc, err := coll.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "one", doc.Name)

	_, err = coll.FindByID(ctx, "not-a-valid-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCollectionInsertRejectsDuplicateID(t *testing.T) {
	coll := seed(t, record{ID: "1"})
	assert.Error(t, coll.Insert(context.Background(), "1", record{ID: "1"}))
}

func TestMemoryCollectionUpdateMany(t *testing.T) {
	ctx := context.Background()
	coll := seed(t,
		record{ID: "1", Name: "one", Owner: "x", Refs: []ref{{ID: "d1", Name: "old"}}},
		record{ID: "2", Name: "two", Owner: "x"},
		record{ID: "3", Name: "three", Owner: "y"},
	)

	matched, err := coll.UpdateMany(ctx, Filter{"owner": "x"}, Patch{"level": 7})
	require.NoError(t, err)
	assert.EqualValues(t, 2, matched)

	doc, err := coll.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 7, doc.Level)
	assert.Equal(t, "one", doc.Name)

	matched, err = coll.UpdateMany(ctx, ByID("1"), Patch{"refs": []ref{{ID: "d1", Name: "new"}}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	doc, err = coll.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []ref{{ID: "d1", Name: "new"}}, doc.Refs)

	matched, err = coll.UpdateMany(ctx, ByID("missing"), Patch{"name": "x"})
	require.NoError(t, err)
	assert.Zero(t, matched)

	untouched, err := coll.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.Zero(t, untouched.Level)
}

func TestMemoryCollectionDeleteByID(t *testing.T) {
	ctx := context.Background()
	coll := seed(t, record{ID: "1"}, record{ID: "2"})

	require.NoError(t, coll.DeleteByID(ctx, "1"))
	assert.ErrorIs(t, coll.DeleteByID(ctx, "1"), ErrNotFound)

	rest, err := coll.Find(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "2", rest[0].ID)
}

func TestMemoryCollectionConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection[record]("records")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			_ = coll.Insert(ctx, id, record{ID: id, Level: i})
		}(i)
	}
	wg.Wait()

	count, err := coll.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 50, count)
}

func TestMemorySequence(t *testing.T) {
	ctx := context.Background()
	seq := NewMemorySequence()

	for want := int64(1); want <= 3; want++ {
		got, err := seq.Next(ctx, "departments")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := seq.Next(ctx, "other")
	require.NoError(t, err)
	assert.EqualValues(t, 1, other)
}
