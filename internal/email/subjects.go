package email

const (
	subjectQuoteFmt   = "Your renovation quotation %s"
	subjectHotLeadFmt = "Hot lead %s needs a call back"
)
