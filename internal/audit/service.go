// Package audit records one trail entry per proxy request. Writes are
// best-effort and never affect the response.
package audit

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

type Entry struct {
	PK             string    `dynamodbav:"PK"`
	SK             string    `dynamodbav:"SK"`
	ResourceType   string    `dynamodbav:"resourceType"`
	CanonicalQuery string    `dynamodbav:"canonicalQuery"`
	StopReason     string    `dynamodbav:"stopReason"`
	StartPage      int       `dynamodbav:"startPage"`
	LastPage       int       `dynamodbav:"lastPage"`
	ItemCount      int       `dynamodbav:"itemCount"`
	StatusCode     int       `dynamodbav:"statusCode"`
	CacheHit       bool      `dynamodbav:"cacheHit"`
	DurationMillis int64     `dynamodbav:"durationMillis"`
	CreateTime     time.Time `dynamodbav:"createTime"`
	ExpiresIn      int64     `dynamodbav:"expiresIn"`
}

type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// retention before DynamoDB's TTL sweeper drops an entry
const entryRetention = 90 * 24 * time.Hour

type DynamoDBService struct {
	DynamoDB  dynamodb.Client
	TableName string
}

func NewDynamoDBService(tableName string, client dynamodb.Client) *DynamoDBService {
	return &DynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
	}
}

func (s *DynamoDBService) Record(ctx context.Context, entry Entry) error {
	gid, err := uuid.NewUUID()
	if err != nil {
		return err
	}
	now := time.Now()
	entry.PK = "Proxy:" + entry.ResourceType
	entry.SK = gid.String()
	entry.CreateTime = now
	entry.ExpiresIn = now.Add(entryRetention).Unix()
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(
		expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists()),
	).Build()
	if err != nil {
		return err
	}
	_, err = s.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(s.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	return err
}

// Discard is the recorder used when no audit table is configured.
type Discard struct{}

func (Discard) Record(ctx context.Context, entry Entry) error {
	return nil
}
