package s3

import (
	"context"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/ivfgo/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB emulates a single-table DynamoDB with conditional version writes.
type fakeDDB struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDDB) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	key := params.Key["ref"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[key]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	key := params.Item["ref"].(*types.AttributeValueMemberS).Value

	if existing, ok := f.items[key]; ok && params.ConditionExpression != nil {
		oldV, _ := strconv.ParseInt(existing["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		newV, _ := strconv.ParseInt(params.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberN).Value, 10, 64)
		if oldV >= newV {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("version too old")}
		}
	}

	f.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestStatsCatalogPutOpen(t *testing.T) {
	catalog := NewStatsCatalog(newFakeDDB(), "ivfgo-stats")
	ctx := context.Background()

	info := meta.MetaPageInfo{Lists: 200, Tuples: 123456}
	require.NoError(t, catalog.PutStats(ctx, "items_embedding", info, 1))

	h, err := catalog.Open(ctx, "items_embedding")
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, 200, h.Info().Lists)
	assert.Equal(t, 123456.0, h.Info().Tuples)
}

func TestStatsCatalogMissing(t *testing.T) {
	catalog := NewStatsCatalog(newFakeDDB(), "ivfgo-stats")

	_, err := catalog.Open(context.Background(), "nope")
	require.ErrorIs(t, err, meta.ErrNotFound)
}

func TestStatsCatalogVersioning(t *testing.T) {
	catalog := NewStatsCatalog(newFakeDDB(), "ivfgo-stats")
	ctx := context.Background()

	require.NoError(t, catalog.PutStats(ctx, "idx", meta.MetaPageInfo{Lists: 10, Tuples: 1}, 5))

	// Same or lower version loses.
	err := catalog.PutStats(ctx, "idx", meta.MetaPageInfo{Lists: 10, Tuples: 2}, 5)
	require.ErrorIs(t, err, ErrStaleStats)
	err = catalog.PutStats(ctx, "idx", meta.MetaPageInfo{Lists: 10, Tuples: 2}, 4)
	require.ErrorIs(t, err, ErrStaleStats)

	// Higher version wins.
	require.NoError(t, catalog.PutStats(ctx, "idx", meta.MetaPageInfo{Lists: 10, Tuples: 3}, 6))

	h, err := catalog.Open(ctx, "idx")
	require.NoError(t, err)
	assert.Equal(t, 3.0, h.Info().Tuples)
}
