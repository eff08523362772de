package classifier

// DefaultSuppressions returns the benign patterns that short-circuit
// classification. These are routine reconciliation/rotation messages that
// surface in event streams but never indicate a problem.
func DefaultSuppressions() []string {
	return []string{
		"Created container",
		"Started container",
		"Successfully pulled image",
		"Successfully assigned",
		"Reconciliation finished",
		"Certificate rotation complete",
	}
}

// DefaultRules returns the built-in classification table. Order is
// significant only for output ordering: rules are cumulative, not mutually
// exclusive, and every matching rule emits its own Issue.
//
// The table merges the per-workload-kind variants into one list; kind-gated
// entries set Kind, everything else applies to any owner kind.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "insufficient-cluster-resources",
			Triggers: []string{"nodes are available", "Insufficient cpu", "Insufficient memory", "No preemption victims found"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` cannot be scheduled - not enough cluster resources.",
			NextSteps: []string{
				"Not enough node resources available to schedule pods. Escalate this issue to your cluster owner.",
				"Increase Node Count in Cluster",
				"Check for Quota Errors",
			},
		},
		{
			Name:     "max-node-group-size",
			Triggers: []string{"max node group size reached"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` cannot be scheduled - cannot increase cluster size.",
			NextSteps: []string{
				"The cluster autoscaler has reached its maximum node count. Escalate this issue to your cluster owner.",
				"Increase Max Node Group Size in Cluster",
			},
		},
		{
			Name:     "node-taints",
			Triggers: []string{"untolerated taint", "node(s) were unschedulable"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` cannot be scheduled - node taints block placement.",
			NextSteps: []string{
				"Check Node Taints and Tolerations for {owner_kind} `{owner_name}`",
				"Escalate to your cluster owner if the taints are unexpected.",
			},
		},
		{
			Name:     "image-pull-failure",
			Triggers: []string{"ImagePullBackOff", "Back-off pulling image", "ErrImagePull", "Failed to pull image"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` has image access issues - check repository authentication and image path.",
			NextSteps: []string{
				"List ImagePullBackoff Events and Test Path and Tags for Namespace",
				"Verify the image registry credentials used by `{owner_name}`.",
			},
		},
		{
			Name:     "crashing-containers",
			Triggers: []string{"CrashLoopBackOff", "Back-off restarting failed container"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` has crashing containers.",
			NextSteps: []string{
				"Check Log for {owner_kind} `{owner_name}`",
				"Inspect container exit codes with `kubectl describe` and review recent configuration changes.",
			},
		},
		{
			Name:     "oom-killed",
			Triggers: []string{"OOMKilled", "Out of memory"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` has containers killed for exceeding memory limits.",
			NextSteps: []string{
				"Check Resource Limits for {owner_kind} `{owner_name}`",
				"Review memory usage trends and raise the container memory limit if the workload legitimately needs it.",
			},
		},
		{
			Name:     "volume-mount-failure",
			Triggers: []string{"FailedMount", "FailedAttachVolume", "MountVolume.SetUp failed"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` has persistent volume mounting issues.",
			NextSteps: []string{
				"Check the status of PersistentVolumeClaims referenced by `{owner_name}`.",
				"List PersistentVolumes in the namespace and verify the storage class supports the requested access mode.",
			},
		},
		{
			Name:     "readiness-probe-failure",
			Triggers: []string{"Readiness probe failed", "Readiness probe errored"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` has unready containers failing readiness probes.",
			NextSteps: []string{
				"Check Readiness Probe Configuration for {owner_kind} `{owner_name}`",
				"Confirm the probed endpoint responds within the configured timeout.",
			},
		},
		{
			Name:     "liveness-probe-failure",
			Triggers: []string{"Liveness probe failed", "Liveness probe errored"},
			Severity: SeverityMinor,
			Title:    "{owner_kind} `{owner_name}` has containers failing liveness probes and restarting.",
			NextSteps: []string{
				"Check Liveness Probe Configuration for {owner_kind} `{owner_name}`",
				"Correlate probe failures with resource saturation before adjusting probe thresholds.",
			},
		},
		{
			Name:     "quota-exceeded",
			Triggers: []string{"exceeded quota", "failed quota"},
			Severity: SeverityMajor,
			Title:    "{owner_kind} `{owner_name}` is blocked by resource quota limits.",
			NextSteps: []string{
				"Check Resource Quota utilization in the namespace.",
				"Request a quota increase from your cluster owner or reduce the requested resources for `{owner_name}`.",
			},
		},
		{
			Name:     "failed-create",
			Triggers: []string{"FailedCreate", "failed to create pod"},
			Severity: SeverityMinor,
			Title:    "{owner_kind} `{owner_name}` cannot create pods.",
			NextSteps: []string{
				"Check Events for {owner_kind} `{owner_name}`",
				"Verify the service account and RBAC permissions used by the controller.",
			},
		},
		{
			Name:     "pod-initializing",
			Triggers: []string{"PodInitializing", "ContainerCreating"},
			Severity: SeverityInformational,
			Title:    "{owner_kind} `{owner_name}` is initializing and not yet ready.",
			NextSteps: []string{
				"Retry in a few minutes and verify `{owner_name}` has finished rolling out.",
			},
		},
		{
			Name:     "statefulset-containers-not-ready",
			Triggers: []string{"ContainersNotReady"},
			Kind:     "StatefulSet",
			Severity: SeverityMinor,
			Title:    "StatefulSet `{owner_name}` has containers that are not ready - check pod ordinal startup order.",
			NextSteps: []string{
				"Check StatefulSet replica ordinals and headless Service endpoints for `{owner_name}`.",
				"Fetch Logs for StatefulSet `{owner_name}`",
			},
		},
		{
			Name:     "deployment-containers-not-ready",
			Triggers: []string{"ContainersNotReady"},
			Kind:     "Deployment",
			Severity: SeverityMinor,
			Title:    "Deployment `{owner_name}` has containers that are not ready.",
			NextSteps: []string{
				"Check Deployment rollout status for `{owner_name}`.",
				"Fetch Logs for Deployment `{owner_name}`",
			},
		},
		{
			Name:     "daemonset-containers-not-ready",
			Triggers: []string{"ContainersNotReady"},
			Kind:     "DaemonSet",
			Severity: SeverityMinor,
			Title:    "DaemonSet `{owner_name}` has containers that are not ready - check node scheduling and tolerations.",
			NextSteps: []string{
				"Check DaemonSet node placement and tolerations for `{owner_name}`.",
				"Fetch Logs for DaemonSet `{owner_name}`",
			},
		},
	}
}
