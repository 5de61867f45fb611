package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"movieapi/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// sequenceID is the key of the counter item that hands out movie ids. It
// lives in the movies table and is hidden from scans.
const sequenceID = 0

type MovieRepository struct {
	client *dynamodb.Client
	table  string
}

type movieItem struct {
	ID          int64   `dynamodbav:"id"`
	Title       string  `dynamodbav:"title"`
	Director    string  `dynamodbav:"director"`
	ReleaseYear int     `dynamodbav:"release_year"`
	Genre       string  `dynamodbav:"genre"`
	ImdbRating  float64 `dynamodbav:"imdb_rating"`
}

func (item movieItem) toMovie() movie.Movie {
	return movie.Movie{
		ID:          item.ID,
		Title:       item.Title,
		Director:    item.Director,
		ReleaseYear: item.ReleaseYear,
		Genre:       item.Genre,
		ImdbRating:  item.ImdbRating,
	}
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

func idKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	movies := []movie.Movie{}
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:        &r.table,
		FilterExpression: aws.String("id <> :seq"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":seq": &types.AttributeValueMemberN{Value: strconv.Itoa(sequenceID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var items []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		for _, item := range items {
			movies = append(movies, item.toMovie())
		}
	}

	sort.Slice(movies, func(i, j int) bool {
		return movies[i].ID < movies[j].ID
	})
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}
	if id == sequenceID {
		return nil, nil
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}

	m := item.toMovie()
	return &m, nil
}

func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	if m.ID == 0 {
		id, err := r.nextID(ctx)
		if err != nil {
			return movie.Movie{}, err
		}
		m.ID = id
	}

	av, err := attributevalue.MarshalMap(movieItem{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		ImdbRating:  m.ImdbRating,
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return m, nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := validateTable(r.table); err != nil {
		return err
	}
	if id == sequenceID {
		return nil
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	return nil
}

// nextID atomically increments the counter item and returns the new value.
func (r *MovieRepository) nextID(ctx context.Context) (int64, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              idKey(sequenceID),
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: next movie id: %w", err)
	}

	var counter struct {
		Seq int64 `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, fmt.Errorf("dynamodb: unmarshal movie id: %w", err)
	}
	return counter.Seq, nil
}
