package types

// PaymentStatus is the lifecycle status of a ledger payment record.
type PaymentStatus string

const (
	PaymentStatusInitiated  PaymentStatus = "Initiated"
	PaymentStatusInProgress PaymentStatus = "InProgress"
	PaymentStatusSuccess    PaymentStatus = "Success"
	PaymentStatusFailed     PaymentStatus = "Failed"
	PaymentStatusError      PaymentStatus = "Error"
)

// IsTerminal reports whether no further transition is driven by this service.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed || s == PaymentStatusError
}

// RequiresErrorDetails reports whether a record in this status must carry an error code.
func (s PaymentStatus) RequiresErrorDetails() bool {
	return s == PaymentStatusFailed || s == PaymentStatusError
}

type Regulator string

const (
	RegulatorEngland         Regulator = "GB-ENG"
	RegulatorScotland        Regulator = "GB-SCT"
	RegulatorWales           Regulator = "GB-WLS"
	RegulatorNorthernIreland Regulator = "GB-NIR"
)

var Regulators = []Regulator{RegulatorEngland, RegulatorScotland, RegulatorWales, RegulatorNorthernIreland}

// OnlineRegulator is the only regulator whose fees can be paid through the hosted payment page.
const OnlineRegulator = RegulatorEngland

func (r Regulator) IsKnown() bool {
	for _, it := range Regulators {
		if it == r {
			return true
		}
	}
	return false
}

type RequestorType string

const (
	RequestorTypeProducers         RequestorType = "Producers"
	RequestorTypeComplianceSchemes RequestorType = "ComplianceSchemes"
	RequestorTypeExporters         RequestorType = "Exporters"
	RequestorTypeReprocessors      RequestorType = "Reprocessors"
)

var RequestorTypes = []RequestorType{
	RequestorTypeProducers,
	RequestorTypeComplianceSchemes,
	RequestorTypeExporters,
	RequestorTypeReprocessors,
}

func (r RequestorType) IsKnown() bool {
	for _, it := range RequestorTypes {
		if it == r {
			return true
		}
	}
	return false
}

// PaymentMethod describes how an offline payment reached the regulator.
type PaymentMethod string

const (
	PaymentMethodBankTransfer      PaymentMethod = "BankTransfer"
	PaymentMethodCreditOrDebitCard PaymentMethod = "CreditOrDebitCard"
	PaymentMethodCheque            PaymentMethod = "Cheque"
	PaymentMethodCash              PaymentMethod = "Cash"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodBankTransfer,
	PaymentMethodCreditOrDebitCard,
	PaymentMethodCheque,
	PaymentMethodCash,
}

func (m PaymentMethod) IsKnown() bool {
	for _, it := range PaymentMethods {
		if it == m {
			return true
		}
	}
	return false
}
