package firebase

import "context"

type TokenStore struct {
	db Database
}

func NewTokenStore(db Database) *TokenStore {
	return &TokenStore{db: db}
}

// GetPushToken returns "" when users/{ownerId}/fcmToken is unset.
func (s *TokenStore) GetPushToken(ctx context.Context, ownerID string) (string, error) {
	var token string
	if err := s.db.Get(ctx, TokenPath(ownerID), &token); err != nil {
		return "", err
	}
	return token, nil
}
