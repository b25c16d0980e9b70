package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of the DynamoDB client the gateway calls
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoDBGateway forwards gateway calls to DynamoDB one-to-one
type DynamoDBGateway struct {
	client DynamoDBAPI
}

// NewDynamoDBGateway wraps an existing client
func NewDynamoDBGateway(client DynamoDBAPI) *DynamoDBGateway {
	return &DynamoDBGateway{client: client}
}

// NewDynamoDBGatewayFromEnv builds a client from the default AWS credential
// chain. A non-empty endpoint points the client at DynamoDB Local.
func NewDynamoDBGatewayFromEnv(ctx context.Context, region, endpoint string) (*DynamoDBGateway, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		// one attempt per operation; failures surface to the caller
		o.Retryer = aws.NopRetryer{}
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewDynamoDBGateway(client), nil
}

// Put implements Gateway.Put
func (g *DynamoDBGateway) Put(ctx context.Context, in *PutInput) (*PutOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, "", err)
	}
	_, pk, err := partitionOf(in.Item)
	if err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, "", err)
	}

	item, err := attributevalue.MarshalMap(map[string]interface{}(in.Item))
	if err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, pk, err)
	}

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(in.TableName),
		Item:      item,
	})
	if err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, pk, err)
	}
	return &PutOutput{}, nil
}

// Get implements Gateway.Get
func (g *DynamoDBGateway) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}
	key, pk, err := marshalKey(in.Key)
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}

	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(in.TableName),
		Key:       key,
	})
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, pk, err)
	}

	item, err := unmarshalItem(out.Item)
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, pk, err)
	}
	return &GetOutput{Item: item}, nil
}

// Update implements Gateway.Update
func (g *DynamoDBGateway) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}
	key, pk, err := marshalKey(in.Key)
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}

	params := &dynamodb.UpdateItemInput{
		TableName:        aws.String(in.TableName),
		Key:              key,
		UpdateExpression: aws.String(in.UpdateExpression),
	}
	if len(in.ExpressionAttributeValues) > 0 {
		values, err := attributevalue.MarshalMap(in.ExpressionAttributeValues)
		if err != nil {
			return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
		}
		params.ExpressionAttributeValues = values
	}
	if len(in.ExpressionAttributeNames) > 0 {
		params.ExpressionAttributeNames = in.ExpressionAttributeNames
	}
	if in.ReturnValues != "" {
		params.ReturnValues = types.ReturnValue(in.ReturnValues)
	}

	out, err := g.client.UpdateItem(ctx, params)
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
	}

	attrs, err := unmarshalItem(out.Attributes)
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
	}
	return &UpdateOutput{Attributes: attrs}, nil
}

// Delete implements Gateway.Delete
func (g *DynamoDBGateway) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}
	key, pk, err := marshalKey(in.Key)
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}

	params := &dynamodb.DeleteItemInput{
		TableName: aws.String(in.TableName),
		Key:       key,
	}
	if in.ReturnValues != "" {
		params.ReturnValues = types.ReturnValue(in.ReturnValues)
	}

	out, err := g.client.DeleteItem(ctx, params)
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
	}

	attrs, err := unmarshalItem(out.Attributes)
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
	}
	return &DeleteOutput{Attributes: attrs}, nil
}

// Close implements Gateway.Close. The SDK client holds no resources.
func (g *DynamoDBGateway) Close() error {
	return nil
}

func marshalKey(k Key) (map[string]types.AttributeValue, string, error) {
	_, pk, err := k.partition()
	if err != nil {
		return nil, "", err
	}
	key, err := attributevalue.MarshalMap(map[string]interface{}(k))
	if err != nil {
		return nil, pk, err
	}
	return key, pk, nil
}

// unmarshalItem maps an empty attribute set to a nil item
func unmarshalItem(av map[string]types.AttributeValue) (Item, error) {
	if len(av) == 0 {
		return nil, nil
	}
	var item map[string]interface{}
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return Item(item), nil
}
