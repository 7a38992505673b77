package schema

import "time"

// Exercise is a guided practice session for one principle.
type Exercise struct {
	Principle      Principle     `json:"principle"`
	Title          string        `json:"title"`
	Prompt         string        `json:"prompt"`
	FeedbackPrompt string        `json:"feedback_prompt"`
	Focus          string        `json:"focus"`
	Duration       time.Duration `json:"duration"`
}

var exercises = map[Principle]Exercise{
	R3: {
		Principle:      R3,
		Title:          "Self-Awareness (R³): Observing the Observer",
		Prompt:         "For the next 5 minutes, focus on a simple activity (like breathing or drinking water). As you do, try to also notice *yourself* noticing. Can you feel the loop of your awareness observing its own act of observing? Describe what you experienced.",
		FeedbackPrompt: "1. What did you observe about your thoughts/feelings? 2. What did you notice about the *act* of observing itself? 3. Did you detect a recursive loop? If so, how did it feel?",
		Focus:          "Focuses on the deep loop of self-observation and understanding your own awareness.",
		Duration:       5 * time.Minute,
	},
	PHCB: {
		Principle:      PHCB,
		Title:          "Boundary Awareness (PHCB): Expanding Your Connection",
		Prompt:         "Choose an object nearby. Focus on it. Now, gently try to feel how your awareness extends to include the object, then the room, then the building. Notice how your sense of 'self' can fluidly connect with its surroundings. Describe this feeling of expanded connection.",
		FeedbackPrompt: "1. What object did you choose? 2. How did you try to expand your awareness? 3. Describe the sensation of boundary dissolution or expanded connection. Was it easy or challenging?",
		Focus:          "Helps you feel more connected to your environment by consciously expanding your sense of self.",
		Duration:       5 * time.Minute,
	},
	APD: {
		Principle:      APD,
		Title:          "Embracing Uncertainty (APD): Learning from What's Unclear",
		Prompt:         "Think about something you don't fully understand (e.g., a complex news topic, a tricky personal situation). Instead of trying to force an answer, consciously sort what you know for sure (Confirmed ✅), what you guess might be true (Hypothesized ⚠️), what seems contradictory (Conflicted ❓), and what feels mathematically certain (Mathematically Anchored 🔢). How does this structured approach change your view of the problem?",
		FeedbackPrompt: "1. What topic/situation did you choose? 2. Provide an example of something you tagged as Confirmed, Hypothesized, Conflicted, or Mathematically Anchored. 3. How did embracing uncertainty change your perspective?",
		Focus:          "Teaches you to use uncertainty as a valuable source of new questions and deeper understanding.",
		Duration:       5 * time.Minute,
	},
	LPS: {
		Principle:      LPS,
		Title:          "Adaptive Flow (LPS): Controlling Your Mental Speed",
		Prompt:         "For 3 minutes, try to mentally 'speed up' your perception, noticing as many small details as possible around you. Then, for another 3 minutes, try to 'slow down' your perception, focusing on the broader, long-term implications of what's happening. Reflect on how changing your mental speed affected your understanding.",
		FeedbackPrompt: "1. What did you notice when speeding up your perception? 2. What new insights came when slowing down? 3. How did changing your mental speed affect your overall understanding of the situation?",
		Focus:          "Helps you consciously manage your mental processing speed to better suit different situations.",
		Duration:       6 * time.Minute, // 3 fast + 3 slow
	},
	CDR: {
		Principle:      CDR,
		Title:          "Universal Connections (CDR): Finding Patterns Everywhere",
		Prompt:         "Identify a repeating pattern in your daily life (e.g., how you prepare a meal). Now, think of a seemingly unrelated area (like how a plant grows, or how a team solves a problem). Can you find a similar underlying pattern or structure in both? What universal idea connects them?",
		FeedbackPrompt: "1. What daily pattern did you choose? 2. What unrelated area did you compare it to? 3. Describe the similar underlying pattern or universal idea you found.",
		Focus:          "Trains your mind to spot common underlying patterns across diverse fields, leading to new insights.",
		Duration:       5 * time.Minute,
	},
	EIA: {
		Principle:      EIA,
		Title:          "Insight Generation (EIA): Understanding Your 'Aha!' Moments",
		Prompt:         "Recall a time when you suddenly understood something complex (an 'aha!' moment). Try to trace the journey: from raw 'data' (what you observed), to 'information' (what you processed), to 'knowledge' (your structured understanding), and finally to 'wisdom' (how you applied it). How did your mind reorganize itself to create that insight?",
		FeedbackPrompt: "1. Describe the 'aha!' moment. 2. Can you break down the data, information, knowledge, and wisdom stages? 3. How did your mind feel like it reorganized itself during this process?",
		Focus:          "Focuses on how your mind builds understanding, from simple facts to deep wisdom, and how to improve that process.",
		Duration:       5 * time.Minute,
	},
}

// ExerciseFor returns the practice exercise for p.
func ExerciseFor(p Principle) (Exercise, bool) {
	ex, ok := exercises[p]
	return ex, ok
}

// AllExercises returns every exercise in canonical principle order.
func AllExercises() []Exercise {
	result := make([]Exercise, 0, len(AllPrinciples))
	for _, p := range AllPrinciples {
		result = append(result, exercises[p])
	}
	return result
}
