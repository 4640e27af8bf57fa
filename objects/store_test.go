package objects_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hkvstore/dompdf/objects"
)

func TestStoreIdempotent(t *testing.T) {
	st := objects.NewStore()
	r := objects.Recording{Content: []byte("0 0 m 10 10 l S\n"), AnchorPage: 2}

	st.Store(7, r)
	first, err := st.Get(7)
	if err != nil {
		t.Fatal(err)
	}
	st.Store(7, r)
	second, err := st.Get(7)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second store changed the recording (-first +second):\n%s", diff)
	}
	if got, want := st.Len(), 1; got != want {
		t.Errorf("invalid length: got=%v, want=%v", got, want)
	}
}

func TestStoreCopiesContent(t *testing.T) {
	st := objects.NewStore()
	content := []byte("abc")
	st.Store(1, objects.Recording{Content: content})
	content[0] = 'X'

	r, _ := st.Get(1)
	if got, want := string(r.Content), "abc"; got != want {
		t.Errorf("stored content aliased: got=%q, want=%q", got, want)
	}
	r.Content[1] = 'Y'
	r, _ = st.Get(1)
	if got, want := string(r.Content), "abc"; got != want {
		t.Errorf("returned content aliased: got=%q, want=%q", got, want)
	}
}

func TestStoreRemove(t *testing.T) {
	st := objects.NewStore()
	st.Store(3, objects.Recording{})
	st.Store(1, objects.Recording{})
	if diff := cmp.Diff([]objects.ObjectID{1, 3}, st.IDs()); diff != "" {
		t.Errorf("invalid ids (-want +got):\n%s", diff)
	}

	st.Remove(3)
	st.Remove(99)
	if st.Has(3) {
		t.Error("removed id still present")
	}
	_, err := st.Get(3)
	var unknown *objects.UnknownObjectError
	if !errors.As(err, &unknown) {
		t.Errorf("Get after Remove: got=%v, want UnknownObjectError", err)
	}
}
