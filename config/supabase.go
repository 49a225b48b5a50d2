package config

import (
	"errors"
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient creates the Supabase client from the loaded settings.
// The client carries both the PostgREST query builder and the storage client.
func NewSupabaseClient(s *Settings) (*supa.Client, error) {
	if s.SupabaseURL == "" || s.SupabaseKey == "" {
		return nil, errors.New("SUPABASE_URL and SUPABASE_KEY must be set")
	}

	client, err := supa.NewClient(s.SupabaseURL, s.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("init supabase client: %w", err)
	}
	return client, nil
}
