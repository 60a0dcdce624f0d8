package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/normalize"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	errBadAccountType = errors.New(`account type must be "student"|"instructor"|"admin"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByResetToken loads the user holding the given reset token, regardless
// of expiry. Expiry is the caller's check so an expired token can produce a
// distinct error.
func (s *Store) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"reset_token": token}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.AccountType = normalize.AccountType(u.AccountType)

	if !models.IsValidAccountType(u.AccountType) {
		return models.User{}, errBadAccountType
	}
	if u.Courses == nil {
		u.Courses = []primitive.ObjectID{}
	}
	if u.CourseProgress == nil {
		u.CourseProgress = []primitive.ObjectID{}
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateImage replaces the user's display image URL.
func (s *Store) UpdateImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"image":      imageURL,
		"updated_at": time.Now(),
	}})
	return err
}

// UpdateName changes the user's display name fields.
func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, firstName, lastName string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"first_name": normalize.Name(firstName),
		"last_name":  normalize.Name(lastName),
		"updated_at": time.Now(),
	}})
	return err
}

// UpdatePasswordHash stores a new password hash.
func (s *Store) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	}})
	return err
}

// SetResetToken records a reset token and its expiry on the user found by
// email. Returns mongo.ErrNoDocuments when no account has that email.
func (s *Store) SetResetToken(ctx context.Context, email, token string, expires time.Time) (*models.User, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email_ci": text.Fold(normalize.Email(email))},
		bson.M{"$set": bson.M{
			"reset_token":         token,
			"reset_token_expires": expires,
			"updated_at":          time.Now(),
		}},
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AddCourse appends a course id to the user's enrolled list.
func (s *Store) AddCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveCourse pulls a course id from the user's enrolled list.
func (s *Store) RemoveCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveCourseFromAll pulls a course id from every user's enrolled list.
// Used by course cascade delete.
func (s *Store) RemoveCourseFromAll(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx, bson.M{"courses": courseID}, bson.M{
		"$pull": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// AddProgress appends a progress record id to the user's list.
func (s *Store) AddProgress(ctx context.Context, userID, progressID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"course_progress": progressID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// Delete removes the user document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
