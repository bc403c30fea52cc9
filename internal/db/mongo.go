package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/secrets/internal/constants"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const usersCollection = "users"

// MongoDB stores users as documents in a "users" collection
type MongoDB struct {
	client *mongo.Client
	users  *mongo.Collection
}

// InitMongo connects to MongoDB and ensures the sparse unique indexes exist
func InitMongo(ctx context.Context, uri, database string) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	m := &MongoDB{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return m, nil
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	sparseUnique := func() *options.IndexOptions {
		return options.Index().SetUnique(true).SetSparse(true)
	}

	_, err := m.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: sparseUnique()},
		{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: sparseUnique()},
		{Keys: bson.D{{Key: "facebookId", Value: 1}}, Options: sparseUnique()},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// Ping verifies the primary is reachable
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// CreateUser creates a new user document
func (m *MongoDB) CreateUser(ctx context.Context, user *User) error {
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*User, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

// GetUserByEmail retrieves a user by email
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

// GetUserByProviderID retrieves a user by its OAuth provider identifier
func (m *MongoDB) GetUserByProviderID(ctx context.Context, provider, providerID string) (*User, error) {
	switch provider {
	case constants.ProviderGoogle:
		return m.findOne(ctx, bson.M{"googleId": providerID})
	case constants.ProviderFacebook:
		return m.findOne(ctx, bson.M{"facebookId": providerID})
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}

// UpdateSecret overwrites the secret of a user
func (m *MongoDB) UpdateSecret(ctx context.Context, id, secret string) error {
	result, err := m.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"secret": secret, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update secret for %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListSecrets retrieves every submitted secret
func (m *MongoDB) ListSecrets(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"secret": 1}).
		SetSort(bson.D{{Key: "updatedAt", Value: 1}})

	cursor, err := m.users.Find(ctx, bson.M{"secret": bson.M{"$ne": nil}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Secret string `bson:"secret"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	secrets := make([]string, 0, len(docs))
	for _, doc := range docs {
		secrets = append(secrets, doc.Secret)
	}
	return secrets, nil
}

func (m *MongoDB) findOne(ctx context.Context, filter bson.M) (*User, error) {
	user := &User{}
	if err := m.users.FindOne(ctx, filter).Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
