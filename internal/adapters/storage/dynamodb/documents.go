package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// putAPI es el subconjunto del cliente que usa el store.
type putAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Documents guarda cada colección en la tabla <prefix><collection>, clave "id".
type Documents struct {
	DB          putAPI
	TablePrefix string
}

func NewDocuments(client *dynamodb.Client, tablePrefix string) *Documents {
	return &Documents{DB: client, TablePrefix: tablePrefix}
}

func (s *Documents) Create(ctx context.Context, collection string, doc any) (string, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return "", errors.New("collection required")
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := uuid.NewString()
	item["id"] = &types.AttributeValueMemberS{Value: id}

	_, err = s.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TablePrefix + collection),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
