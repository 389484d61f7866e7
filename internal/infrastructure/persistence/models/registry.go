package models

// All returns every model for schema migration
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&UserTokenModel{},
		&TherapistModel{},
		&TherapistFileModel{},
		&ClientTherapistModel{},
		&PreAssessmentModel{},
		&MeetingModel{},
		&AvailabilityModel{},
		&ConversationModel{},
		&ParticipantModel{},
		&MessageModel{},
		&ReadReceiptModel{},
		&ReactionModel{},
		&BlockModel{},
		&ContentReportModel{},
		&ModerationActionModel{},
		&AuditLogModel{},
		&SystemEventModel{},
		&WorksheetModel{},
		&NotificationModel{},
		&ReviewModel{},
		&ReviewHelpfulVoteModel{},
	}
}
