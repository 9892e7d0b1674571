package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/ivfgo/meta"
)

// DDBClient is the subset of the DynamoDB API the catalog uses.
type DDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ErrStaleStats is returned when a conditional stats write loses against a
// newer version.
var ErrStaleStats = errors.New("s3: stale stats version")

// StatsCatalog keeps per-index statistics in a DynamoDB table and serves
// them as a meta.Provider. It spares planners a ranged S3 read per planning
// call when the index lives in object storage.
//
// Table schema:
//   - Partition key: ref (string), the index reference
//   - Attributes: lists (number), tuples (number), version (number)
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name ivfgo-stats \
//	  --attribute-definitions AttributeName=ref,AttributeType=S \
//	  --key-schema AttributeName=ref,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type StatsCatalog struct {
	client    DDBClient
	tableName string
}

// NewStatsCatalog creates a catalog over the given table.
func NewStatsCatalog(client DDBClient, tableName string) *StatsCatalog {
	return &StatsCatalog{client: client, tableName: tableName}
}

// Open fetches the stats record for an index.
func (c *StatsCatalog) Open(ctx context.Context, ref meta.Ref) (meta.Handle, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.tableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			"ref": &types.AttributeValueMemberS{Value: string(ref)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("s3: stats lookup for %q: %w", ref, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %q", meta.ErrNotFound, ref)
	}

	lists, err := numberAttr(out.Item, "lists")
	if err != nil {
		return nil, err
	}
	tuples, err := numberAttr(out.Item, "tuples")
	if err != nil {
		return nil, err
	}
	if lists < 1 {
		return nil, fmt.Errorf("s3: stats record for %q has invalid list count %v", ref, lists)
	}

	return meta.NewHandle(meta.MetaPageInfo{
		Lists:  int(lists),
		Tuples: tuples,
	}), nil
}

// PutStats writes a stats record. The write succeeds only against a lower
// version, so concurrent maintenance jobs cannot roll statistics backwards.
func (c *StatsCatalog) PutStats(ctx context.Context, ref meta.Ref, info meta.MetaPageInfo, version int64) error {
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"ref":     &types.AttributeValueMemberS{Value: string(ref)},
			"lists":   &types.AttributeValueMemberN{Value: strconv.Itoa(info.Lists)},
			"tuples":  &types.AttributeValueMemberN{Value: strconv.FormatFloat(info.Tuples, 'g', -1, 64)},
			"version": &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
		},
		ConditionExpression: aws.String("attribute_not_exists(#v) OR #v < :v"),
		ExpressionAttributeNames: map[string]string{
			"#v": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return ErrStaleStats
		}
		return fmt.Errorf("s3: stats write for %q: %w", ref, err)
	}
	return nil
}

func numberAttr(item map[string]types.AttributeValue, name string) (float64, error) {
	attr, ok := item[name]
	if !ok {
		return 0, fmt.Errorf("s3: stats record missing %q", name)
	}
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("s3: stats attribute %q is not a number", name)
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("s3: stats attribute %q: %w", name, err)
	}
	return v, nil
}

var _ meta.Provider = (*StatsCatalog)(nil)
