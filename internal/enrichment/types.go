package enrichment

import "time"

const (
	failureCategoryResolveBranchTipConstant = "resolve-branch-tip"
	failureCategoryCreateBranchConstant     = "create-branch"
	failureCategoryResolveCommitTreeConstant = "resolve-commit-tree"
	failureCategoryCreateBlobConstant       = "create-blob"
	failureCategoryCreateTreeConstant       = "create-tree"
	failureCategoryCreateCommitConstant     = "create-commit"
	failureCategoryUpdateBranchConstant     = "update-branch"
)

// FailureCategory labels the deployment stage at which an attempt failed.
type FailureCategory string

const (
	// FailureCategoryResolveBranchTip covers failures resolving the target branch tip commit.
	FailureCategoryResolveBranchTip FailureCategory = failureCategoryResolveBranchTipConstant
	// FailureCategoryCreateBranch covers failures creating the feature branch reference.
	FailureCategoryCreateBranch FailureCategory = failureCategoryCreateBranchConstant
	// FailureCategoryResolveCommitTree covers failures resolving the tip commit's tree.
	FailureCategoryResolveCommitTree FailureCategory = failureCategoryResolveCommitTreeConstant
	// FailureCategoryCreateBlob covers failures uploading file content blobs.
	FailureCategoryCreateBlob FailureCategory = failureCategoryCreateBlobConstant
	// FailureCategoryCreateTree covers failures creating the layered tree.
	FailureCategoryCreateTree FailureCategory = failureCategoryCreateTreeConstant
	// FailureCategoryCreateCommit covers failures creating the deployment commit.
	FailureCategoryCreateCommit FailureCategory = failureCategoryCreateCommitConstant
	// FailureCategoryUpdateBranch covers failures moving the feature branch to the new commit.
	FailureCategoryUpdateBranch FailureCategory = failureCategoryUpdateBranchConstant
)

// FailureCause pairs the failing deployment stage with its error text.
type FailureCause struct {
	Category FailureCategory
	Message  string
}

// DeploymentConfig captures the configuration for a single repository deployment.
type DeploymentConfig struct {
	RepositoryName     string
	Owner              string
	TargetBranch       string
	FeatureBranch      string
	DirectoryStructure map[string]string
}

// DeploymentResult records the immutable outcome of one deployment attempt.
type DeploymentResult struct {
	Repository       string
	Success          bool
	FilesDeployed    int
	LinesDeployed    int
	BranchURL        string
	ExecutionSeconds float64
	Error            string
	Cause            *FailureCause
}

// RepositoryAnalysis describes repository metadata and top-level layout. A
// failed analysis carries its error in Err instead of interrupting the caller.
type RepositoryAnalysis struct {
	Name          string
	Description   string
	Language      string
	DefaultBranch string
	Structure     map[string]string
	Err           error
}

// Clock supplies wall-clock readings so deployment timing stays testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
