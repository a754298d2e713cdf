package repository

import (
	"EnrollHub/entity"
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) GetCoupons(ctx context.Context) ([]entity.Coupon, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(couponsCollection)
	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	coupons := make([]entity.Coupon, 0)
	if err = cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("mongodb decode coupons: %w", err)
	}
	return coupons, nil
}

// GetCouponByCode looks a coupon up by its user-facing code; codes are stored upper case.
func (m *MongoDB) GetCouponByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(couponsCollection)
	filter := bson.D{{Key: "code", Value: strings.ToUpper(strings.TrimSpace(code))}}

	var coupon entity.Coupon
	if err = collection.FindOne(ctx, filter).Decode(&coupon); err != nil {
		return nil, m.findError(err)
	}
	return &coupon, nil
}

func (m *MongoDB) UpsertCoupon(ctx context.Context, coupon *entity.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return m.upsert(ctx, couponsCollection, coupon.ID, coupon)
}

func (m *MongoDB) DeleteCoupon(ctx context.Context, id string) error {
	return m.delete(ctx, couponsCollection, id)
}
