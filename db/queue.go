package db

import (
	"context"
	"database/sql"
	"errors"

	"stayflow/common"

	"github.com/rs/zerolog/log"
)

func (sr *StayflowRepo) InsertMessage(queue string, payload string, ctx context.Context) (int64, error) {
	query := `
		INSERT INTO queued_messages (queue, payload, status)
		VALUES (?, ?, ?);`

	result, err := sr.db.ExecContext(ctx, query,
		queue,                // queue
		payload,              // payload
		common.PendingStatus, // status
	)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to insert new message")
		return 0, common.ErrInternal
	}

	messageID, err := result.LastInsertId()
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to get inserted message id")
		return 0, common.ErrInternal
	}
	return messageID, nil
}

// SelectMessageForProcessing claims the oldest pending message of the queue.
// The claim is a read followed by a conditional update: if another consumer
// flipped the row first, zero rows are affected and nil is returned so the
// caller retries on its next poll.
func (sr *StayflowRepo) SelectMessageForProcessing(queue string, ctx context.Context) (*ClaimedMessage, error) {
	selectQuery := `
		SELECT id, payload
		FROM queued_messages
		WHERE queue = ? AND status = ?
		ORDER BY id
		LIMIT 1;`

	var msg ClaimedMessage
	err := sr.db.QueryRowContext(ctx, selectQuery,
		queue,                // WHERE queue = ?
		common.PendingStatus, // AND status = ?
	).Scan(&msg.ID, &msg.Payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to select message for processing")
		return nil, common.ErrInternal
	}

	updateQuery := `
		UPDATE queued_messages
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?;`

	result, err := sr.db.ExecContext(ctx, updateQuery,
		common.ProcessingStatus, // SET status = ?
		msg.ID,                  // WHERE id = ?
		common.PendingStatus,    // AND status = ?
	)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Int64("message_id", msg.ID).Msg("failed to mark message as processing")
		return nil, common.ErrInternal
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, common.ErrInternal
	}
	if rowsAffected == 0 {
		// lost the claim race to a concurrent consumer
		return nil, nil
	}
	return &msg, nil
}

func (sr *StayflowRepo) UpdateMessageDone(messageID int64, ctx context.Context) error {
	query := `
		UPDATE queued_messages
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?;`

	result, err := sr.db.ExecContext(ctx, query,
		common.DoneStatus, // SET status = ?
		messageID,         // WHERE id = ?
	)
	if err != nil {
		log.Error().Err(err).Int64("message_id", messageID).Msg("failed to acknowledge message")
		return common.ErrInternal
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Int64("message_id", messageID).Msg("failed to get rows affected after acknowledge")
		return common.ErrInternal
	}

	if rowsAffected == 0 {
		log.Warn().Int64("message_id", messageID).Msg("no rows updated on acknowledge, message does not exist")
	}
	return nil
}

func (sr *StayflowRepo) CountPendingMessages(queue string, ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM queued_messages
		WHERE queue = ? AND status = ?;`

	var count int64
	err := sr.db.QueryRowContext(ctx, query,
		queue,                // WHERE queue = ?
		common.PendingStatus, // AND status = ?
	).Scan(&count)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to count pending messages")
		return 0, common.ErrInternal
	}
	return count, nil
}
