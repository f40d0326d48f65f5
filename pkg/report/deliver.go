package report

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pelagos-io/remora/pkg/cleanup"
	"github.com/pelagos-io/remora/pkg/common"
)

// Mailer is the email-sending capability the reporter needs.
type Mailer interface {
	VerifiedRecipients(recipients []string) (valid []string, unverified []string, err error)
	Send(sender string, recipients []string, subject string, body string, attachment []byte) error
}

// Deliver formats the run report and emails it. The cleanup already
// happened; whatever goes wrong here is a visibility failure for the caller
// to log, never a reason to revisit the removals.
func Deliver(mailer Mailer, runReport *cleanup.RunReport, policy common.CleanupPolicy) error {
	recipients, unverified, err := mailer.VerifiedRecipients(policy.Recipients)
	if err != nil {
		// fall back to every configured recipient and let delivery decide
		log.Warnf("Can't check recipient verification: %s", err.Error())
		recipients = policy.Recipients
		unverified = nil
	}

	if len(recipients) == 0 {
		return fmt.Errorf("no verified recipient among %s", strings.Join(policy.Recipients, ", "))
	}

	var attachment []byte
	if hasOutcomes(runReport) {
		attachment, err = CSV(runReport)
		if err != nil {
			log.Warnf("Can't build the CSV attachment: %s", err.Error())
			attachment = nil
		}
	}

	return mailer.Send(policy.Sender, recipients, Subject(runReport), Body(runReport, unverified), attachment)
}
