package grin

// Publisher is a trusted source for submitting a signed kernel (wrapped
// in its full Grin transaction by the external wallet integration) onto
// the Grin network, and for being notified once a given kernel excess
// appears in a confirmed block. Adapted from the same
// chainntfs/chainntfs.go-derived shape package bitcoin's Broadcaster
// uses, generalized away from Bitcoin-specific outpoints.
type Publisher interface {
	// Publish submits the transaction wrapping kernel to the network.
	// Assembling inputs/outputs/proofs around the kernel into a
	// complete Grin transaction is delegated to the external wallet
	// integration.
	Publish(kernel Kernel) error

	// RegisterKernelNtfn registers an intent to be notified once a
	// transaction carrying excess is confirmed. The returned
	// KernelEvent fires once, delivering the kernel that matched.
	RegisterKernelNtfn(excess PKs) (*KernelEvent, error)
}

// KernelEvent encapsulates a one-shot kernel-confirmation notification.
type KernelEvent struct {
	Confirmed chan Kernel // MUST be buffered.
}

// FundAction is the funder's signed fund kernel, ready to publish.
type FundAction struct {
	Kernel Kernel
}

// Publish submits the fund kernel via p.
func (a FundAction) Publish(p Publisher) error {
	return p.Publish(a.Kernel)
}

// RefundAction is the fully-aggregated refund kernel, broadcastable only
// once its LockHeight has passed.
type RefundAction struct {
	Kernel Kernel
}

// Publish submits the refund kernel via p.
func (a RefundAction) Publish(p Publisher) error {
	return p.Publish(a.Kernel)
}

// RedeemAction is the fully-aggregated redeem kernel.
type RedeemAction struct {
	Kernel Kernel
}

// Publish submits the redeem kernel via p.
func (a RedeemAction) Publish(p Publisher) error {
	return p.Publish(a.Kernel)
}
