package dynamoseq

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/dogmatiq/sequencekit/driver/aws/internal/awsx"
	"github.com/dogmatiq/sequencekit/driver/aws/internal/dynamox"
	"github.com/dogmatiq/sequencekit/sequence"
)

type seq struct {
	name      string
	options   sequence.Options
	client    *dynamodb.Client
	table     string
	onRequest func(any) []func(*dynamodb.Options)
}

func (s *seq) Name() string {
	return s.name
}

func (s *seq) Next(ctx context.Context) (int64, error) {
	// The stored value is the value the next allocation returns. A single
	// UpdateItem call creates the item already advanced past the start value,
	// or advances an existing item by the step, and returns the post-advance
	// value; subtracting the step yields the allocated value in both cases.
	out, err := awsx.Do(
		ctx,
		s.client.UpdateItem,
		s.onRequest,
		&dynamodb.UpdateItemInput{
			TableName:        aws.String(s.table),
			Key:              s.key(),
			UpdateExpression: aws.String(`SET #V = if_not_exists(#V, :init) + :step`),
			ExpressionAttributeNames: map[string]string{
				"#V": valueAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":init": number(s.options.Start),
				":step": number(s.options.Step),
			},
			ReturnValues: types.ReturnValueAllNew,
		},
	)
	if err != nil {
		return 0, s.fail("allocate next value", err)
	}

	v, err := attrValue(out.Attributes)
	if err != nil {
		return 0, err
	}

	return v - s.options.Step, nil
}

func (s *seq) Peek(ctx context.Context) (int64, error) {
	out, err := awsx.Do(
		ctx,
		s.client.GetItem,
		s.onRequest,
		&dynamodb.GetItemInput{
			TableName:            aws.String(s.table),
			Key:                  s.key(),
			ProjectionExpression: aws.String(`#V`),
			ExpressionAttributeNames: map[string]string{
				"#V": valueAttr,
			},
			ConsistentRead: aws.Bool(true),
		},
	)
	if err != nil {
		return 0, s.fail("peek at next value", err)
	}

	if out.Item == nil {
		return s.options.Start, nil
	}

	return attrValue(out.Item)
}

func (s *seq) Reset(ctx context.Context) (int64, error) {
	if _, err := awsx.Do(
		ctx,
		s.client.PutItem,
		s.onRequest,
		&dynamodb.PutItemInput{
			TableName: aws.String(s.table),
			Item: map[string]types.AttributeValue{
				nameAttr:  &types.AttributeValueMemberS{Value: s.name},
				valueAttr: number(s.options.Start),
			},
		},
	); err != nil {
		return 0, s.fail("reset sequence", err)
	}

	return s.options.Start, nil
}

func (s *seq) Close() error {
	return nil
}

func (s *seq) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		nameAttr: &types.AttributeValueMemberS{Value: s.name},
	}
}

// fail classifies an error from DynamoDB.
//
// Errors reported by the service itself are wrapped with context; anything
// else is a failure to communicate with the service and is surfaced as a
// [sequence.UnavailableError].
func (s *seq) fail(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	return sequence.UnavailableError{
		Sequence: s.name,
		Cause:    err,
	}
}

func number(v int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{
		Value: strconv.FormatInt(v, 10),
	}
}

func attrValue(item map[string]types.AttributeValue) (int64, error) {
	attr, err := dynamox.AttrAs[*types.AttributeValueMemberN](item, valueAttr)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("item is corrupt: %q attribute is not an integer: %w", valueAttr, err)
	}

	return v, nil
}
