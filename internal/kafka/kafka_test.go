package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

type mockReader struct {
	mock.Mock
}

func (m *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *mockReader) Close() error {
	return m.Called().Error(0)
}

func TestProducerPublishesJSONWithTopicAndKey(t *testing.T) {
	w := new(mockWriter)
	p := &Producer{Writer: w, Logger: logger.NewWithWriter(&bytes.Buffer{})}

	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 {
			return false
		}
		var body map[string]string
		_ = json.Unmarshal(msgs[0].Value, &body)
		return msgs[0].Topic == "storefront.event.submitted" &&
			string(msgs[0].Key) == "9" &&
			body["title"] == "Board Game Night"
	})).Return(nil).Once()

	err := p.Publish(context.Background(), "storefront.event.submitted", "9", map[string]string{"title": "Board Game Night"})
	require.NoError(t, err)
	w.AssertExpectations(t)
}

func TestProducerWrapsWriteErrors(t *testing.T) {
	w := new(mockWriter)
	p := &Producer{Writer: w}
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := p.Publish(context.Background(), "t", "k", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish to t")
}

func TestLogPublisherOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(logger.NewWithWriter(&buf))

	require.NoError(t, p.Publish(context.Background(), "storefront.contact.received", "jo@example.com", map[string]string{"name": "Jo"}))
	assert.Contains(t, buf.String(), "[SKIPPED] storefront.contact.received")
	assert.NoError(t, p.Close())

	err := p.Publish(context.Background(), "t", "k", func() {})
	assert.Error(t, err)
}

func TestConsumerDecodesAndSkipsBadMessages(t *testing.T) {
	r := new(mockReader)
	c := &Consumer{reader: r, logger: logger.NewWithWriter(&bytes.Buffer{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good, _ := json.Marshal(models.Confirmation{OrderID: "TKT-1-abc", EventID: "1", Quantity: 2})
	r.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: []byte("{not json")}, nil).Once()
	r.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: good}, nil).Once()
	r.On("ReadMessage", mock.Anything).Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()

	var got []models.Confirmation
	err := c.Start(ctx, func(_ context.Context, conf models.Confirmation) error {
		got = append(got, conf)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TKT-1-abc", got[0].OrderID)
	r.AssertExpectations(t)
}

func TestConsumerReturnsReadErrors(t *testing.T) {
	r := new(mockReader)
	c := &Consumer{reader: r, logger: logger.NewWithWriter(&bytes.Buffer{})}
	r.On("ReadMessage", mock.Anything).Return(kafka.Message{}, errors.New("connection reset"))

	err := c.Start(context.Background(), func(context.Context, models.Confirmation) error { return nil })
	assert.EqualError(t, err, "connection reset")
}
