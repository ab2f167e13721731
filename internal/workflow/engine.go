// Package workflow implements the approval lifecycle of 5-Why records:
//
//	Pendente ──approve──▶ Aprovado (terminal)
//	Pendente ──reject───▶ Reprovado ──rectify──▶ Retificado ─(re-evaluated)─▶ …
//
// Transitions persist first and emit notification intents second; delivery
// is somebody else's problem (see internal/mailer).
package workflow

import (
	"context"
	"strings"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
)

// User-facing messages, kept in the operators' language.
const (
	msgBadManagerCode  = "Código do gestor incorreto"
	msgCommentRequired = "Obrigatório o preenchimento do comentário"
	msgBadEmail        = "Digite e-mail válido do domínio da empresa"
)

// Engine applies workflow transitions to occurrence records.
type Engine struct {
	Occurrences *repository.OccurrenceRepo
	Users       *repository.UserRepo
	Cfg         config.WorkflowConfig
}

// Result is a completed transition: the record as persisted plus the
// notifications the caller should dispatch.
type Result struct {
	Occurrence    models.Occurrence
	Notifications []Notification
}

// Submit validates and persists a new record with status Pendente, then
// emits a "new 5-Why" notification for the assigned manager. Nothing is
// persisted when validation fails.
func (e *Engine) Submit(ctx context.Context, occ models.Occurrence) (Result, error) {
	occ.Status = models.StatusPending
	fields := repository.Normalize(occ.Fields())

	if err := repository.RequireKeyFields(fields); err != nil {
		return Result{}, err
	}
	if err := e.checkEmailDomain(fields[models.FieldResponsibleEmail]); err != nil {
		return Result{}, err
	}

	manager, err := e.Users.FindByName(ctx, fields[models.FieldManager])
	if err != nil {
		return Result{}, errs.Validationf("gestor %q não encontrado", fields[models.FieldManager])
	}

	key := repository.DeriveDocumentKey(
		fields[models.FieldLine],
		fields[models.FieldEquipment],
		fields[models.FieldDate],
		fields[models.FieldTime],
	)
	if err := e.Occurrences.Create(ctx, key, fields); err != nil {
		return Result{}, err
	}

	persisted := models.OccurrenceFromFields(key, fields)
	return Result{
		Occurrence: persisted,
		Notifications: []Notification{{
			Kind:        NotifySubmitted,
			DocumentKey: key,
			Recipients:  e.withEscalation([]string{manager.Email}, persisted.TriggerMinutes),
		}},
	}, nil
}

// Approve moves a record under evaluation to Aprovado. Only the status
// field is touched in the store. The submitter is notified with the
// manager's comment; long stoppages are also reported to the oversight
// addresses.
func (e *Engine) Approve(ctx context.Context, key, actorCode, comment string) (Result, error) {
	if actorCode != e.Cfg.ManagerCode {
		return Result{}, errs.Authorizationf("%s", msgBadManagerCode)
	}

	occ, err := e.Occurrences.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if err := requireUnderEvaluation(occ); err != nil {
		return Result{}, err
	}

	if err := e.Occurrences.UpdateStatus(ctx, key, models.StatusApproved); err != nil {
		return Result{}, err
	}
	occ.Status = models.StatusApproved

	return Result{
		Occurrence: occ,
		Notifications: []Notification{{
			Kind:        NotifyApproved,
			DocumentKey: key,
			Recipients:  e.withEscalation([]string{occ.ResponsibleEmail}, occ.TriggerMinutes),
			Comment:     comment,
		}},
	}, nil
}

// Reject moves a record under evaluation to Reprovado. The comment is
// mandatory: the submitter has to know what to fix. Wrong code and missing
// comment are distinct failures with distinct messages.
func (e *Engine) Reject(ctx context.Context, key, actorCode, comment string) (Result, error) {
	if actorCode != e.Cfg.ManagerCode {
		return Result{}, errs.Authorizationf("%s", msgBadManagerCode)
	}
	if strings.TrimSpace(comment) == "" {
		return Result{}, errs.Validationf("%s", msgCommentRequired)
	}

	occ, err := e.Occurrences.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if err := requireUnderEvaluation(occ); err != nil {
		return Result{}, err
	}

	if err := e.Occurrences.UpdateStatus(ctx, key, models.StatusRejected); err != nil {
		return Result{}, err
	}
	occ.Status = models.StatusRejected

	return Result{
		Occurrence: occ,
		Notifications: []Notification{{
			Kind:        NotifyRejected,
			DocumentKey: key,
			Recipients:  e.withEscalation([]string{occ.ResponsibleEmail}, occ.TriggerMinutes),
			Comment:     comment,
		}},
	}, nil
}

// Rectify merges edited fields into a rejected record and re-enters it
// into evaluation as Retificado. Fields absent from the edit keep their
// stored values. The assigned manager is notified to re-evaluate.
func (e *Engine) Rectify(ctx context.Context, key string, edited map[string]string) (Result, error) {
	stored, err := e.Occurrences.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if stored.Status != models.StatusRejected {
		return Result{}, errs.Validationf("apenas 5-porques reprovados podem ser retificados (status atual: %s)", stored.Status)
	}

	edits := repository.Normalize(edited)
	edits[models.FieldStatus] = models.StatusRectified

	// Validate the record as it will read after the merge, not just the
	// edited subset.
	merged := stored.Fields()
	for k, v := range edits {
		merged[k] = v
	}
	if err := e.checkEmailDomain(merged[models.FieldResponsibleEmail]); err != nil {
		return Result{}, err
	}
	manager, err := e.Users.FindByName(ctx, merged[models.FieldManager])
	if err != nil {
		return Result{}, errs.Validationf("gestor %q não encontrado", merged[models.FieldManager])
	}

	if err := e.Occurrences.Merge(ctx, key, edits); err != nil {
		return Result{}, err
	}

	persisted := models.OccurrenceFromFields(key, merged)
	return Result{
		Occurrence: persisted,
		Notifications: []Notification{{
			Kind:        NotifyRectified,
			DocumentKey: key,
			Recipients:  e.withEscalation([]string{manager.Email}, persisted.TriggerMinutes),
		}},
	}, nil
}

func (e *Engine) checkEmailDomain(email string) error {
	if !strings.Contains(email, e.Cfg.EmailDomain) {
		return errs.Validationf("%s (%s)", msgBadEmail, e.Cfg.EmailDomain)
	}
	return nil
}

// withEscalation appends the oversight addresses when the stoppage exceeds
// the escalation threshold. Strictly greater: a 60-minute stoppage at a
// 60-minute threshold does not escalate.
func (e *Engine) withEscalation(recipients []string, triggerMinutes int) []string {
	if triggerMinutes > e.Cfg.EscalationMinutes {
		recipients = append(recipients, e.Cfg.EscalationRecipients...)
	}
	return recipients
}

// requireUnderEvaluation gates approval decisions: Pendente and Retificado
// records are awaiting a verdict, everything else already has one.
func requireUnderEvaluation(occ models.Occurrence) error {
	if occ.Status == models.StatusPending || occ.Status == models.StatusRectified {
		return nil
	}
	return errs.Validationf("5-porques %s já foi avaliado (status: %s)", occ.DocumentKey, occ.Status)
}
