package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type ToFirestoreFunc[T any] func(*T) map[string]interface{}
type FromFirestoreFunc[T any] func(map[string]interface{}) *T

type Collection[T any] struct {
	Ref           *firestore.CollectionRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (c *Collection[T]) Doc(id string) *DocumentRef[T] {
	return &DocumentRef[T]{
		Ref:           c.Ref.Doc(id),
		ToFirestore:   c.ToFirestore,
		FromFirestore: c.FromFirestore,
	}
}

func (c *Collection[T]) NewDoc() *DocumentRef[T] {
	return &DocumentRef[T]{
		Ref:           c.Ref.NewDoc(),
		ToFirestore:   c.ToFirestore,
		FromFirestore: c.FromFirestore,
	}
}

func (c *Collection[T]) Query() *QueryRef[T] {
	return &QueryRef[T]{
		query:         c.Ref.Query,
		FromFirestore: c.FromFirestore,
	}
}

type DocumentRef[T any] struct {
	Ref           *firestore.DocumentRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (d *DocumentRef[T]) ID() string {
	return d.Ref.ID
}

func (d *DocumentRef[T]) Get(ctx context.Context) (*T, error) {
	snap, err := d.Ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	return d.FromFirestore(snap.Data()), nil
}

func (d *DocumentRef[T]) Set(ctx context.Context, data *T) error {
	m := d.ToFirestore(data)
	_, err := d.Ref.Set(ctx, m, firestore.MergeAll)
	return err
}

func (d *DocumentRef[T]) Update(ctx context.Context, updates map[string]interface{}) error {
	// Simple map update - keys must match Firestore snake_case fields.
	// No converter here because updates are often partials.
	_, err := d.Ref.Set(ctx, updates, firestore.MergeAll)
	return err
}

// QueryRef is a typed wrapper over a Firestore query.
type QueryRef[T any] struct {
	query         firestore.Query
	FromFirestore FromFirestoreFunc[T]
}

func (q *QueryRef[T]) Where(path, op string, value interface{}) *QueryRef[T] {
	return &QueryRef[T]{
		query:         q.query.Where(path, op, value),
		FromFirestore: q.FromFirestore,
	}
}

func (q *QueryRef[T]) OrderBy(path string, dir firestore.Direction) *QueryRef[T] {
	return &QueryRef[T]{
		query:         q.query.OrderBy(path, dir),
		FromFirestore: q.FromFirestore,
	}
}

func (q *QueryRef[T]) Limit(n int) *QueryRef[T] {
	return &QueryRef[T]{
		query:         q.query.Limit(n),
		FromFirestore: q.FromFirestore,
	}
}

func (q *QueryRef[T]) GetAll(ctx context.Context) ([]*T, error) {
	iter := q.query.Documents(ctx)
	defer iter.Stop()

	var results []*T
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		results = append(results, q.FromFirestore(snap.Data()))
	}
	return results, nil
}
