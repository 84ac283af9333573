package config

type WorkerKeyStruct struct {
	BillingRunQueue string
}

var WorkerKey = &WorkerKeyStruct{
	BillingRunQueue: "billing_run_queue",
}
