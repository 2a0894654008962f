package hostbridge

import "fmt"

func TopicHostAcks(prefix string) string {
	return fmt.Sprintf("%s/host/+/ack/+", prefix)
}

func TopicHostOnline(prefix string) string {
	return fmt.Sprintf("%s/host/+/online", prefix)
}

func TopicHostHeartbeat(prefix string) string {
	return fmt.Sprintf("%s/host/+/heartbeat", prefix)
}

func TopicDirective(prefix, hostID, requestID string) string {
	return fmt.Sprintf("%s/host/%s/directive/%s", prefix, hostID, requestID)
}

func TopicAck(prefix, hostID, requestID string) string {
	return fmt.Sprintf("%s/host/%s/ack/%s", prefix, hostID, requestID)
}

func TopicDirectives(prefix, hostID string) string {
	return fmt.Sprintf("%s/host/%s/directive/+", prefix, hostID)
}

func TopicOnline(prefix, hostID string) string {
	return fmt.Sprintf("%s/host/%s/online", prefix, hostID)
}

func TopicHeartbeat(prefix, hostID string) string {
	return fmt.Sprintf("%s/host/%s/heartbeat", prefix, hostID)
}
