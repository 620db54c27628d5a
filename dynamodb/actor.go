package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"moviecatalog/actor"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// BatchGetItem accepts at most 100 keys per request.
	maxBatchKeys = 100

	// MaxBatchRounds bounds the BatchGetItem calls made for one chunk,
	// counting the retries of UnprocessedKeys.
	MaxBatchRounds = 8

	maxUnprocessedBackoff = 2 * time.Second
)

// ErrUnprocessedKeys is returned when DynamoDB keeps throttling a chunk
// for MaxBatchRounds calls.
var ErrUnprocessedKeys = errors.New("dynamodb: actor keys left unprocessed")

// BatchGetter is the subset of *dynamodb.Client used by ActorRepository.
type BatchGetter interface {
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
}

// ActorRepository reads the external actor catalog stored in a DynamoDB
// table keyed by the numeric attribute "id".
type ActorRepository struct {
	client  BatchGetter
	table   string
	backoff retry.BackoffDelayer
}

type ActorRepositoryOption func(*ActorRepository)

// WithUnprocessedBackoff replaces the jittered exponential delay applied
// before retrying UnprocessedKeys.
func WithUnprocessedBackoff(b retry.BackoffDelayer) ActorRepositoryOption {
	return func(r *ActorRepository) {
		r.backoff = b
	}
}

type actorItem struct {
	ID   int    `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

func NewActorRepository(client BatchGetter, table string, opts ...ActorRepositoryOption) *ActorRepository {
	r := &ActorRepository{
		client:  client,
		table:   table,
		backoff: retry.NewExponentialJitterBackoff(maxUnprocessedBackoff),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ActorRepository) ExistingActorIDs(ctx context.Context, ids []int) ([]int, error) {
	actors, err := r.ActorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return actor.IDs(actors), nil
}

func (r *ActorRepository) ActorsByIDs(ctx context.Context, ids []int) ([]actor.Actor, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	ids = actor.UniqueIDs(ids)
	actors := []actor.Actor{}
	for start := 0; start < len(ids); start += maxBatchKeys {
		end := start + maxBatchKeys
		if end > len(ids) {
			end = len(ids)
		}
		chunk, err := r.batchGet(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		actors = append(actors, chunk...)
	}

	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
	return actors, nil
}

func (r *ActorRepository) batchGet(ctx context.Context, ids []int) ([]actor.Actor, error) {
	keys := make([]map[string]types.AttributeValue, len(ids))
	for i, id := range ids {
		keys[i] = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
		}
	}

	var actors []actor.Actor
	request := map[string]types.KeysAndAttributes{
		r.table: {Keys: keys},
	}
	for round := 1; len(request) > 0; round++ {
		if round > MaxBatchRounds {
			return nil, fmt.Errorf("%w: %d keys after %d calls", ErrUnprocessedKeys, len(request[r.table].Keys), MaxBatchRounds)
		}
		if round > 1 {
			if err := r.wait(ctx, round-1); err != nil {
				return nil, err
			}
		}

		out, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: request,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb: batch get actors: %w", err)
		}

		var items []actorItem
		if err := attributevalue.UnmarshalListOfMaps(out.Responses[r.table], &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal actors: %w", err)
		}
		for _, item := range items {
			actors = append(actors, actor.Actor{ID: item.ID, Name: item.Name})
		}

		request = out.UnprocessedKeys
	}

	return actors, nil
}

func (r *ActorRepository) wait(ctx context.Context, attempt int) error {
	delay, err := r.backoff.BackoffDelay(attempt, ErrUnprocessedKeys)
	if err != nil {
		return err
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
