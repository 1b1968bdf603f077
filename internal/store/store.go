package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Collection names as they exist in the backing Firestore project. No field
// is validated server-side; the repositories own all shaping.
const (
	CompaniesCollection = "companies"
	SitesCollection     = "companySites"
	UsersCollection     = "userProfiles"
	ResponsesCollection = "responses"
)

// Store wraps the Firestore client shared by all repositories.
type Store struct {
	client *firestore.Client
}

func Open(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("store: connect firestore project %s: %w", projectID, err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Collection(name string) *firestore.CollectionRef {
	return s.client.Collection(name)
}

func (s *Store) Close() error {
	return s.client.Close()
}
