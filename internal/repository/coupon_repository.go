package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"dalbhaat-backend/internal/models"
)

// redeemAttempts bounds the optimistic-concurrency retry loop in Redeem.
const redeemAttempts = 3

// CheckCoupon is the single validation rule set for coupons: missing,
// inactive, expired and exhausted codes each map to their own error.
// Pure; callers decide whether to follow up with a redemption.
func CheckCoupon(c *models.Coupon, now time.Time) error {
	if c == nil {
		return fmt.Errorf("coupon: %w", ErrNotFound)
	}
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.After(c.ExpiresAt) {
		return ErrCouponExpired
	}
	if c.Exhausted() {
		return ErrCouponLimit
	}
	return nil
}

type CouponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(collection *mongo.Collection) *CouponRepository {
	return &CouponRepository{collection: collection}
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = coupon.CreatedAt
	_, err := r.collection.InsertOne(ctx, coupon)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("coupon %q: %w", coupon.Code, ErrDuplicate)
	}
	return err
}

func (r *CouponRepository) FindAll(ctx context.Context) ([]models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var coupon models.Coupon
	if err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon %q: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) Update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("coupon: %w", ErrNotFound)
	}

	update["updatedAt"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("coupon: %w", ErrNotFound)
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("coupon: %w", ErrNotFound)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("coupon: %w", ErrNotFound)
	}
	return nil
}

// Validate runs the coupon checks without consuming a use. This is the read
// the checkout price calculation relies on.
func (r *CouponRepository) Validate(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := r.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := CheckCoupon(coupon, time.Now()); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Redeem consumes one use of the coupon. The write is guarded by the
// timesUsed value read during validation, so two concurrent redemptions of
// the last use cannot both succeed; the loser re-reads and re-validates.
func (r *CouponRepository) Redeem(ctx context.Context, code string) (*models.Coupon, error) {
	for attempt := 0; attempt < redeemAttempts; attempt++ {
		coupon, err := r.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if err := CheckCoupon(coupon, time.Now()); err != nil {
			return nil, err
		}

		updated := *coupon
		updated.ApplyRedemption()

		opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		result, err := r.collection.UpdateOne(opCtx,
			bson.M{"_id": coupon.ID, "timesUsed": coupon.TimesUsed},
			bson.M{"$set": bson.M{
				"timesUsed":  updated.TimesUsed,
				"usageLimit": updated.UsageLimit,
				"updatedAt":  time.Now(),
			}},
		)
		cancel()
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 1 {
			return &updated, nil
		}
		// Lost the race; try again against the fresh counters.
	}
	return nil, fmt.Errorf("coupon %q: %w", code, ErrConflict)
}
