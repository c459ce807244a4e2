package nodes

// Graph node names.
const (
	NodeClassifier      = "Classifier"
	NodeResponder       = "Responder"
	NodeCrisisResponder = "CrisisResponder"
)
