package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/webinarlab/lead-intake/internal/entity"
	"github.com/webinarlab/lead-intake/internal/infra/integration/aweber"
)

// Timestamps go to the sheet in the funnel's local format.
const sheetTimeLayout = "02/01/2006 15:04:05"

type SubmitLeadUseCase struct {
	Sheets      SheetAppender
	List        MailingListProvider
	CampaignTag string

	loc *time.Location
}

func NewSubmitLeadUseCase(sheets SheetAppender, list MailingListProvider, campaignTag string) *SubmitLeadUseCase {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		loc = time.Local
	}

	return &SubmitLeadUseCase{
		Sheets:      sheets,
		List:        list,
		CampaignTag: campaignTag,
		loc:         loc,
	}
}

// Execute runs the full intake sequence: validate, append the sheet row,
// then best-effort sync the mailing list. The sheet write is mandatory and
// happens first; the mailing-list step never fails the submission.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	validationErrors := ValidateSubmitLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	lead := &entity.Lead{
		ID:          uuid.New().String(),
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		Source:      input.Source,
		SubmittedAt: time.Now().In(uc.loc),
	}

	if err := uc.Sheets.AppendLeadRow(ctx, uc.buildRow(lead)); err != nil {
		logrus.Errorf("❌ Sheets: append fallito per %s: %v", lead.ID, err)
		return nil, &TechnicalError{
			Code:    "SHEETS_ERROR",
			Message: "impossibile salvare su Google Sheets: " + err.Error(),
		}
	}

	outcome := uc.syncMailingList(ctx, lead)
	if !outcome.OK() {
		logrus.Warnf("⚠️ AWeber: sync %s per lead %s: %s", outcome.Status, lead.ID, outcome.Reason)
	}

	return &SubmitLeadOutput{
		ID:          lead.ID,
		Message:     "Registrazione completata con successo",
		MailingList: outcome,
	}, nil
}

// buildRow projects a lead onto the sheet's six fixed columns.
func (uc *SubmitLeadUseCase) buildRow(lead *entity.Lead) []string {
	return []string{
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.SubmittedAt.Format(sheetTimeLayout),
		ResolveSourceLabel(lead.Source, uc.CampaignTag),
		StripIntlPrefix(lead.Phone),
	}
}

// syncMailingList is the upsert workflow:
//
//	TOKEN -> LOOKUP -> FOUND -> PATCH -> TAG_CHECK -> TAG_APPLY? -> DONE
//	                -> NOT_FOUND -> CREATE -> DONE
//
// Every provider failure is contained here. The spreadsheet is the system
// of record; the mailing list is secondary and must never block it.
func (uc *SubmitLeadUseCase) syncMailingList(ctx context.Context, lead *entity.Lead) SyncOutcome {
	token, err := uc.List.AccessToken(ctx)
	if err != nil {
		return SyncOutcome{Status: SyncFatal, Reason: "cannot authenticate downstream: " + err.Error()}
	}

	sub, err := uc.List.FindSubscriber(ctx, token, lead.Email)
	if err != nil {
		return uc.recover("lookup", err)
	}

	if sub == nil {
		err := uc.List.CreateSubscriber(ctx, token, aweber.CreateSubscriberInput{
			Email: lead.Email,
			Name:  lead.FullName,
			Phone: lead.Phone,
			Tags:  []string{uc.CampaignTag},
		})
		if err != nil {
			// "already subscribed" here means we lost a race with another
			// signup for the same email. The subscriber exists, which is
			// what we wanted.
			if aweber.IsConflict(err) {
				return SyncOutcome{Status: SyncRecovered, Reason: "subscriber already existed on create"}
			}
			return uc.recover("create", err)
		}
		return SyncOutcome{Status: SyncOK}
	}

	if err := uc.List.UpdateSubscriber(ctx, token, sub, lead.FullName, lead.Phone); err != nil {
		return uc.recover("update", err)
	}

	if !sub.HasTag(uc.CampaignTag) {
		if err := uc.List.AddTag(ctx, token, sub, uc.CampaignTag); err != nil {
			if aweber.IsConflict(err) {
				// Redundant tag add, the tag is there either way.
				return SyncOutcome{Status: SyncOK}
			}
			return uc.recover("tag", err)
		}
	}

	return SyncOutcome{Status: SyncOK}
}

func (uc *SubmitLeadUseCase) recover(step string, err error) SyncOutcome {
	if aweber.IsPermission(err) {
		logrus.Warnf("⚠️ AWeber: permesso negato durante %s: %v", step, err)
		logrus.Warn("   verifica: approvazione app, validità del token, custom field 'phone' creato nella lista")
	}
	return SyncOutcome{Status: SyncRecovered, Reason: step + " failed: " + err.Error()}
}
