package memory

import "github.com/wisecrew/api/internal/domain"

var seedServices = []domain.ServiceOffering{
	{ID: "1", Title: "Website Development", Description: "Responsive, high-performance websites built with modern technologies like React and Next.js."},
	{ID: "2", Title: "Digital Marketing", Description: "Strategic SEO, SMO, and content marketing to boost your online presence and leads."},
	{ID: "3", Title: "Mobile App Dev", Description: "Cross-platform mobile applications using Flutter and React Native for iOS and Android."},
	{ID: "4", Title: "Lead Generation", Description: "Targeted strategies to acquire high-quality leads for your business growth."},
	{ID: "5", Title: "Placement Training", Description: "Comprehensive technical and soft-skill training to get students industry-ready."},
	{ID: "6", Title: "Digital Business Cards", Description: "Modern, shareable digital identities for professionals and businesses."},
}

var seedInternships = []domain.Internship{
	{ID: "1", Title: "Python Development", Type: "Free", Duration: "1-3 Months", Mode: "Online", Description: "Learn Python basics to advanced frameworks like Django/Flask."},
	{ID: "2", Title: "Web Development (PHP)", Type: "Paid", Duration: "3 Months", Mode: "Offline", Description: "Full stack development with PHP, MySQL, and Modern JS."},
	{ID: "3", Title: "IoT Solutions", Type: "Paid", Duration: "2 Months", Mode: "Offline", Description: "Hands-on training with Arduino, Raspberry Pi and Sensors."},
	{ID: "4", Title: "Node.js Backend", Type: "Free", Duration: "2 Months", Mode: "Online", Description: "Build scalable APIs and microservices with Node.js."},
	{ID: "5", Title: "Java Programming", Type: "Paid", Duration: "3 Months", Mode: "Online", Description: "Core Java to Enterprise Java applications."},
}

var seedJobs = []domain.Job{
	{
		ID: "1", Title: "Frontend Developer (React)", Type: "Internship", Location: "Remote",
		Description:      "We are looking for a passionate Frontend Developer intern to build modern UI components using React and Tailwind CSS.",
		Tags:             []string{"Development", "React", "Frontend"},
		Perks:            "Certificate, Mentorship, LOR",
		Responsibilities: []string{"Build reusable UI components", "Integrate RESTful APIs", "Debug and fix UI issues", "Ensure mobile responsiveness"},
	},
	{
		ID: "2", Title: "Backend Developer (Node.js)", Type: "Internship", Location: "Hybrid",
		Description:      "Join our backend team to design and optimize scalable APIs and database architectures.",
		Tags:             []string{"Development", "Backend", "Database"},
		Perks:            "Certificate, Live Projects, Networking",
		Responsibilities: []string{"Design database schemas", "Create robust API endpoints", "Manage server deployment", "Optimize query performance"},
	},
	{
		ID: "3", Title: "Mobile App Dev (Flutter)", Type: "Internship", Location: "Remote",
		Description:      "Help us build cross-platform mobile applications for iOS and Android using Flutter.",
		Tags:             []string{"Development", "Mobile", "Dart"},
		Perks:            "Certificate, Flexible hours, Remote Work",
		Responsibilities: []string{"Develop cross-platform apps", "Implement pixel-perfect UIs", "Manage app state efficiently", "Integrate backend services"},
	},
	{
		ID: "4", Title: "UI/UX Designer (Figma)", Type: "Internship", Location: "Remote",
		Description:      "Creative designer needed to craft intuitive user experiences and beautiful interfaces.",
		Tags:             []string{"Design", "Creative", "Figma"},
		Perks:            "Certificate, Portfolio building, Workshops",
		Responsibilities: []string{"Create wireframes & prototypes", "Conduct user research", "Design mobile & web interfaces", "Maintain design systems"},
	},
	{
		ID: "5", Title: "Marketing Intern", Type: "Internship", Location: "On-site",
		Description:      "Energetic intern required to handle social media campaigns and digital outreach.",
		Tags:             []string{"Marketing", "Social Media"},
		Perks:            "Performance Incentives, Certificate",
		Responsibilities: []string{"Manage social media handles", "Create engaging content", "Analyze campaign metrics", "Coordinate with design team"},
	},
	{
		ID: "6", Title: "Gen AI Intern", Type: "Internship", Location: "Remote",
		Description:      "Explore the cutting edge of AI with research and implementation of LLM-based solutions.",
		Tags:             []string{"AI", "Research", "Python"},
		Perks:            "Access to premium AI tools, Mentorship",
		Responsibilities: []string{"Prompt engineering & testing", "Integrate LLM APIs", "Research RAG techniques", "Build AI-powered prototypes"},
	},
}

var seedCourses = []domain.Course{
	{ID: "1", Title: "Full Stack Web Dev", Level: "Beginner", Duration: "6 Months", Features: []string{"MERN Stack", "Real Projects", "Placement Support"}},
	{ID: "2", Title: "Python Masterclass", Level: "Intermediate", Duration: "3 Months", Features: []string{"Data Analysis", "Automation", "Django"}},
	{ID: "3", Title: "Flutter App Dev", Level: "Intermediate", Duration: "4 Months", Features: []string{"iOS & Android", "State Mgmt", "Firebase"}},
	{ID: "4", Title: "Data Science Basics", Level: "Advanced", Duration: "5 Months", Features: []string{"Pandas/NumPy", "Visualization", "ML Basics"}},
	{ID: "5", Title: "Digital Marketing", Level: "Beginner", Duration: "2 Months", Features: []string{"SEO/SEM", "Social Media", "Analytics"}},
	{ID: "6", Title: "Java Programming", Level: "Beginner", Duration: "4 Months", Features: []string{"Core Java", "OOPs", "Collections"}},
}

var seedProducts = []domain.Product{
	{ID: "1", Name: "Inventory Manager", Category: "Business", Description: "Track stock levels and orders in real-time."},
	{ID: "2", Name: "Smart HRMS", Category: "HR", Description: "Employee attendance, payroll, and performance tracking."},
	{ID: "3", Name: "Campus Connect", Category: "Education", Description: "Complete college management ERP system."},
	{ID: "4", Name: "DocuHealth", Category: "Healthcare", Description: "Hospital management and patient record system."},
	{ID: "5", Name: "E-Shop Pro", Category: "E-commerce", Description: "Turnkey e-commerce solution for small businesses."},
	{ID: "6", Name: "Quiz Master", Category: "Education", Description: "Online exam and quiz management platform."},
}

var seedWorkshops = []domain.Workshop{
	{ID: "1", Title: "Generative AI Tools & Prompt Engineering", Date: "Oct 25, 2025", Mode: "Online", Description: "A hands-on session exploring the latest AI tools, LLMs, and efficient prompt construction.", Status: "Upcoming"},
	{ID: "2", Title: "Full Stack Roadmap 2025", Date: "Sep 10, 2025", Mode: "Online", Description: "Guide to becoming a full stack developer in 2025.", Status: "Completed"},
}

var seedFAQs = []domain.FAQItem{
	{Question: "Is the internship really free?", Answer: "Yes, we offer select free internships for meritorious students which include real-time project experience. We also have paid premium programs with intensive mentorship."},
	{Question: "Do you provide certificates?", Answer: "Absolutely. All interns and course participants receive a verifiable certificate upon successful completion."},
	{Question: "Can I do the internship online?", Answer: "Yes, most of our internships are available in both Online and Offline modes to suit your schedule."},
	{Question: "How do I apply for a job?", Answer: "Navigate to the Careers section, check the open positions, and use the \"Apply Now\" form to submit your details."},
}

var seedTestimonials = []domain.Testimonial{
	{ID: "1", Name: "Arjun Kumar", Role: "Student, SRM University", Quote: "The internship at Wisecrew gave me the real-world exposure I needed. The mentors are fantastic!", Rating: 5},
	{ID: "2", Name: "Divya S", Role: "Frontend Dev Intern", Quote: "I learned more in 2 months here than I did in a whole year of college. Highly recommended.", Rating: 4.5},
	{ID: "3", Name: "Prof. Ramesh", Role: "HOD, SVCE", Quote: "Wisecrew Solutions provides excellent industrial training that bridges the gap between academia and industry.", Rating: 5},
	{ID: "4", Name: "Sneha P", Role: "Full Stack Student", Quote: "The course structure is amazing. I got placed in a top MNC after completing the Java course.", Rating: 5},
}
