package dynamoseq

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dogmatiq/sequencekit/driver/aws/internal/awsx"
)

const (
	// nameAttr is the name of the attribute that stores the sequence name on
	// each item. It is the primary key of the table.
	nameAttr = "Name"

	// valueAttr is the name of the attribute that stores the value the next
	// allocation returns.
	valueAttr = "Value"
)

// createTable creates the DynamoDB table if it does not already exist.
func (s *store) createTable(ctx context.Context) error {
	_, err := awsx.Do(
		ctx,
		s.Client.CreateTable,
		s.OnRequest,
		&dynamodb.CreateTableInput{
			TableName: aws.String(s.Table),
			AttributeDefinitions: []types.AttributeDefinition{
				{
					AttributeName: aws.String(nameAttr),
					AttributeType: types.ScalarAttributeTypeS,
				},
			},
			KeySchema: []types.KeySchemaElement{
				{
					AttributeName: aws.String(nameAttr),
					KeyType:       types.KeyTypeHash,
				},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
	)

	if errors.As(err, new(*types.ResourceInUseException)) {
		return nil
	}

	return err
}
