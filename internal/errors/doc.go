// Package errors is the structured error type shared by every layer of the
// villainous-api service.
//
// An Error carries a Code, a player-facing message, an optional cause and a
// metadata map. Repositories return NotFound/AlreadyExists, orchestrators
// return InvalidArgument and FailedPrecondition, and the gRPC handlers turn
// whatever reaches them into a status with ToGRPCError.
//
//	err := errors.NotFound("game not found").WithMeta("game_id", id)
//
//	if err := repo.Update(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to save game")
//	}
//
// Input checks use the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("game_id", input.GameID, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// Rule violations inside a turn (not enough power, blocked action) are not
// errors at all; they come back as a failed turn.Result.
package errors
