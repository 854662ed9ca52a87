package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePut struct {
	in  *dynamodb.PutItemInput
	err error
}

func (f *fakePut) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.in = in
	return &dynamodb.PutItemOutput{}, f.err
}

type doc struct {
	Name  string  `dynamodbav:"name"`
	Photo *string `dynamodbav:"photo"`
}

func TestDocuments_Create(t *testing.T) {
	api := &fakePut{}
	s := &Documents{DB: api, TablePrefix: "dev_"}

	id, err := s.Create(context.Background(), "pets", doc{Name: "Rex"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Equal(t, "dev_pets", *api.in.TableName)
	assert.Equal(t, &types.AttributeValueMemberS{Value: id}, api.in.Item["id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Rex"}, api.in.Item["name"])
	assert.Equal(t, &types.AttributeValueMemberNULL{Value: true}, api.in.Item["photo"])
}

func TestDocuments_CreateError(t *testing.T) {
	s := &Documents{DB: &fakePut{err: errors.New("throttled")}}
	_, err := s.Create(context.Background(), "pets", doc{Name: "Rex"})
	assert.EqualError(t, err, "throttled")
}
